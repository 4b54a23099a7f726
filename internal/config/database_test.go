package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

type poolRecorder struct {
	open, idle int
	lifetime   time.Duration
}

func (p *poolRecorder) SetMaxOpenConns(n int)              { p.open = n }
func (p *poolRecorder) SetMaxIdleConns(n int)              { p.idle = n }
func (p *poolRecorder) SetConnMaxLifetime(d time.Duration) { p.lifetime = d }

func TestApplyPool(t *testing.T) {
	var p poolRecorder
	applyPool(&p, DatabaseConfig{MaxOpenConns: 4, MaxIdleConns: 10, ConnMaxLifetime: time.Minute})
	assert.Equal(t, poolRecorder{open: 4, idle: 4, lifetime: time.Minute}, p)

	var untouched poolRecorder
	applyPool(&untouched, DatabaseConfig{})
	assert.Equal(t, poolRecorder{}, untouched)
}

func TestLoad_PoolSettings(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("DB_CONN_MAX_LIFETIME", "5m")

	cfg := Load()

	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, gormLogLevel("development"))
	assert.Equal(t, logger.Silent, gormLogLevel("test"))
	assert.Equal(t, logger.Warn, gormLogLevel("production"))
}
