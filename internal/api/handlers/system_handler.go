package handlers

import (
	"net/http"
	"runtime"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemHandler reports a host resource snapshot for the ops status page.
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// Stats returns CPU and memory usage plus goroutine count.
func (h *SystemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var cpuPercent float64
	percents, err := cpu.Percent(0, false)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read CPU usage")
	} else if len(percents) > 0 {
		cpuPercent = percents[0]
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Error().Err(err).Msg("Failed to read memory usage")
		writeMessage(w, http.StatusInternalServerError, "Failed to read system stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cpuPercent": cpuPercent,
		"memory": map[string]interface{}{
			"total":       vm.Total,
			"used":        vm.Used,
			"usedPercent": vm.UsedPercent,
		},
		"goroutines": runtime.NumGoroutine(),
	})
}
