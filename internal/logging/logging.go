package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger: JSON to stdout plus, when buf is non-nil,
// a second core capturing entries into the bounded buffer. The buffer is the
// injected replacement for the console interception the log panel used to rely
// on; components log normally and the panel reads the buffer.
func New(level string, buf *Buffer) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	stdout := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		lvl,
	)

	core := zapcore.Core(stdout)
	if buf != nil {
		core = zapcore.NewTee(stdout, newBufferCore(buf, lvl, encoderConfig))
	}

	return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))
}

// bufferCore mirrors log entries into a Buffer.
type bufferCore struct {
	zapcore.LevelEnabler
	enc zapcore.Encoder
	buf *Buffer
}

func newBufferCore(buf *Buffer, enabler zapcore.LevelEnabler, cfg zapcore.EncoderConfig) zapcore.Core {
	fieldCfg := cfg
	// The entry struct already carries time, level and message; the encoder
	// only renders the structured fields.
	fieldCfg.TimeKey = ""
	fieldCfg.LevelKey = ""
	fieldCfg.MessageKey = ""
	fieldCfg.CallerKey = ""
	fieldCfg.StacktraceKey = ""
	return &bufferCore{
		LevelEnabler: enabler,
		enc:          zapcore.NewJSONEncoder(fieldCfg),
		buf:          buf,
	}
}

func (c *bufferCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &bufferCore{
		LevelEnabler: c.LevelEnabler,
		enc:          c.enc.Clone(),
		buf:          c.buf,
	}
	for i := range fields {
		fields[i].AddTo(clone.enc)
	}
	return clone
}

func (c *bufferCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *bufferCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	encoded, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	rendered := strings.TrimSpace(encoded.String())
	encoded.Free()
	if rendered == "{}" {
		rendered = ""
	}
	c.buf.Append(Entry{
		Time:    ent.Time,
		Level:   ent.Level.String(),
		Message: ent.Message,
		Fields:  rendered,
	})
	return nil
}

func (c *bufferCore) Sync() error { return nil }
