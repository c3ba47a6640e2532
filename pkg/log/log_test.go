package log

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestSetDefaults(t *testing.T) {
	conf := SetDefaults()
	assert.Equal(t, "stdout", conf.Output)
	assert.Equal(t, "INFO", conf.Level)
	assert.Equal(t, 7, conf.KeepDays)
}

func TestValidate_FileWithoutPath(t *testing.T) {
	conf := &Conf{Output: "file"}
	err := conf.Validate()
	assert.Error(t, err)
}

func TestValidate_FillsDefaults(t *testing.T) {
	conf := &Conf{Output: "file", Path: "./logs"}
	require.NoError(t, conf.Validate())
	assert.Equal(t, 100, conf.RotateSize)
	assert.Equal(t, 10, conf.RotateNum)
	assert.Equal(t, 7, conf.KeepDays)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"DEBUG", zapcore.DebugLevel},
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"WARN", zapcore.WarnLevel},
		{"WARNING", zapcore.WarnLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"FATAL", zapcore.FatalLevel},
		{"bogus", zapcore.InfoLevel},
		{" info ", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.level), tt.level)
	}
}

func TestNewLog(t *testing.T) {
	logger, err := NewLog(SetDefaults())
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.NotNil(t, GetLogger())
}

// 热替换与包级写日志并发进行，读写必须走同一把锁
func TestConcurrentSwapAndWrite(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				Infow("swap under write", "n", j)
				Debugf("n=%d", j)
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := NewLog(SetDefaults())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
