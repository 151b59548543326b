package console

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/marmos91/fedctl/internal/logger"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// captureLogs routes WARN and above into a buffer for the test.
func captureLogs(t *testing.T) *syncBuffer {
	t.Helper()
	buf := &syncBuffer{}
	logger.InitWithWriter(buf, "WARN", "text", false)
	t.Cleanup(func() { logger.InitWithWriter(os.Stderr, "WARN", "text", false) })
	return buf
}

// testDeps returns deps backed by recording notifier and navigator.
func testDeps() (Deps, *AlertLog, *NavigationLog) {
	alerts := &AlertLog{}
	nav := &NavigationLog{}
	return Deps{Notifier: alerts, Navigator: nav}, alerts, nav
}
