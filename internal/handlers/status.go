package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/load"
	"github.com/shirou/gopsutil/mem"

	"streambox/internal/events"
)

// StatusHandler reports process and host health for the status endpoint.
type StatusHandler struct {
	hub       *events.Hub
	startedAt time.Time
}

func NewStatusHandler(hub *events.Hub) *StatusHandler {
	return &StatusHandler{hub: hub, startedAt: time.Now()}
}

func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"uptimeSeconds": int(time.Since(h.startedAt).Seconds()),
		"goroutines":    runtime.NumGoroutine(),
		"eventClients":  h.hub.ClientCount(),
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		status["memory"] = map[string]interface{}{
			"totalBytes":  vm.Total,
			"usedBytes":   vm.Used,
			"usedPercent": vm.UsedPercent,
		}
	}
	if avg, err := load.Avg(); err == nil {
		status["load"] = map[string]float64{
			"1m":  avg.Load1,
			"5m":  avg.Load5,
			"15m": avg.Load15,
		}
	}

	respondJSON(w, http.StatusOK, status)
}
