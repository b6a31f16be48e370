package monitoring

import (
	"errors"
	"testing"
	"time"
)

type recordMonitor struct {
	errs    []error
	tags    []map[string]string
	flushed bool
}

func (m *recordMonitor) CaptureException(err error, tags map[string]string) {
	m.errs = append(m.errs, err)
	m.tags = append(m.tags, tags)
}
func (m *recordMonitor) Recover()            {}
func (m *recordMonitor) Flush(time.Duration) { m.flushed = true }

func TestInit_IgnoresNil(t *testing.T) {
	mon := &recordMonitor{}
	Init(mon)
	defer Reset()
	Init(nil)
	CaptureException(errors.New("x"), nil)
	if len(mon.errs) != 1 {
		t.Fatalf("expected capture through installed monitor, got %d", len(mon.errs))
	}
}

func TestRecover_ReportsAndRepanics(t *testing.T) {
	mon := &recordMonitor{}
	Init(mon)
	defer Reset()

	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("expected re-panic, got %v", r)
		}
		if len(mon.errs) != 1 || mon.tags[0]["module"] != "panic" || !mon.flushed {
			t.Fatalf("panic not reported: %+v", mon)
		}
	}()
	func() {
		defer Recover()
		panic("boom")
	}()
}
