package services

import (
	"os"
	"testing"

	"github.com/Aidyn-B/Learning_Dashboard/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}
