package metrics

import "time"

type NoopRecorder struct{}

func (NoopRecorder) IncOperation(string, string, string)           {}
func (NoopRecorder) ObserveLatency(string, string, time.Duration) {}
