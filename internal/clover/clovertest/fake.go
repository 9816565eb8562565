// Package clovertest provides a recording clover.Tool for tests.
package clovertest

import (
	"context"
	"sync"

	"github.com/specialistvlad/clovergrid/internal/clover"
)

// FakeTool records every call. Errors can be injected per operation.
type FakeTool struct {
	mu sync.Mutex

	Instruments []clover.InstrumentRequest
	Reports     []clover.ReportRequest
	Checks      []clover.CheckRequest

	InstrumentErr error
	ReportErr     error
	CheckErr      error

	// OnInstrument runs before a successful Instrument returns, e.g. to
	// write fake instrumented classes.
	OnInstrument func(req clover.InstrumentRequest)
	// Journal, if set, receives "instrument", "report:<fmt>" and "check" entries.
	Journal func(entry string)
}

func (f *FakeTool) Instrument(_ context.Context, req clover.InstrumentRequest) error {
	f.mu.Lock()
	f.Instruments = append(f.Instruments, req)
	f.mu.Unlock()
	f.note("instrument")
	if f.InstrumentErr != nil {
		return f.InstrumentErr
	}
	if f.OnInstrument != nil {
		f.OnInstrument(req)
	}
	return nil
}

func (f *FakeTool) Report(_ context.Context, req clover.ReportRequest) error {
	f.mu.Lock()
	f.Reports = append(f.Reports, req)
	f.mu.Unlock()
	f.note("report:" + string(req.Format))
	return f.ReportErr
}

func (f *FakeTool) Check(_ context.Context, req clover.CheckRequest) error {
	f.mu.Lock()
	f.Checks = append(f.Checks, req)
	f.mu.Unlock()
	f.note("check")
	return f.CheckErr
}

// InstrumentCount returns how many times Instrument was called.
func (f *FakeTool) InstrumentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Instruments)
}

func (f *FakeTool) note(entry string) {
	if f.Journal != nil {
		f.Journal(entry)
	}
}

var _ clover.Tool = (*FakeTool)(nil)
