package internal

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mama165/sdk-go/database"
)

type Config struct {
	NumberOfWorkers        int           `env:"NUMBER_OF_WORKERS,default=5" validate:"min=1"`
	QueueFactor            int           `env:"QUEUE_FACTOR,default=3" validate:"min=1"`
	MaxConcurrentTransfers int           `env:"MAX_CONCURRENT_TRANSFERS,default=0" validate:"min=0"`
	MaxClients             int           `env:"MAX_CLIENTS,default=50" validate:"min=1"`
	MaxRooms               int           `env:"MAX_ROOMS,default=20" validate:"min=1"`
	MaxRoomUsers           int           `env:"MAX_ROOM_USERS,default=15" validate:"min=1"`
	MaxFileSize            int64         `env:"MAX_FILE_SIZE,default=3145728" validate:"min=1"`
	ProcessingUnit         time.Duration `env:"PROCESSING_UNIT,default=1s" validate:"gt=0"`
	MaxProcessingDelay     time.Duration `env:"MAX_PROCESSING_DELAY,default=8s" validate:"gt=0"`
	AverageProcessingTime  time.Duration `env:"AVERAGE_PROCESSING_TIME,default=3500ms" validate:"gt=0"`
	EnqueueTimeout         time.Duration `env:"ENQUEUE_TIMEOUT,default=0s" validate:"gte=0"`
	WriteTimeout           time.Duration `env:"WRITE_TIMEOUT,default=5s" validate:"gte=0"`
	RestartInterval        time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	MetricInterval         time.Duration `env:"METRIC_INTERVAL,default=30s" validate:"gte=0"`
	UploadsDir             string        `env:"UPLOADS_DIR,default=uploads" validate:"required"`
	BadgerFilepath         string        `env:"BADGER_FILEPATH"`
	BadgerInMemory         bool          `env:"BADGER_IN_MEMORY,default=false"`
	HealthPort             int           `env:"HEALTH_PORT,default=0" validate:"min=0,max=65535"`
	DebugPort              int           `env:"DEBUG_PORT,default=0" validate:"min=0,max=65535"`
	LogLevel               string        `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR debug info warn error"`
	Host                   string        `env:"HOST,default=0.0.0.0"`
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// LedgerPath is the badger directory shared by the server and the transfers
// command.
func (c Config) LedgerPath() string {
	if c.BadgerFilepath == "" {
		return database.DefaultPath
	}
	return c.BadgerFilepath
}

// QueueCapacity is the number of pending transfers the upload queue holds.
func (c Config) QueueCapacity() int {
	return c.QueueFactor * c.NumberOfWorkers
}

// ConcurrencyLimit is the number of transfer permits. Zero means one per worker.
func (c Config) ConcurrencyLimit() int {
	if c.MaxConcurrentTransfers <= 0 || c.MaxConcurrentTransfers > c.NumberOfWorkers {
		return c.NumberOfWorkers
	}
	return c.MaxConcurrentTransfers
}
