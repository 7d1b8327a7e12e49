package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"aureus/domain"
	"aureus/service"
)

func TestPrintDashboard_Milestones(t *testing.T) {
	params := domain.DefaultSimulationParams()
	result := service.Simulate(params)

	var buf bytes.Buffer
	printDashboard(&buf, params, result, tableStep)
	out := buf.String()

	assert.Contains(t, out, "AUREUS: GOLD DCA PROJECTION")
	assert.Contains(t, out, "$37,000.00")
	assert.Contains(t, out, "Universal 2.0% discount applied")
	assert.Contains(t, out, "Initial")
	assert.Contains(t, out, "Month 6 ")
	assert.Contains(t, out, "Month 36")
	assert.NotContains(t, out, "Month 7 ")
}

func TestPrintDashboard_AllRows(t *testing.T) {
	params := domain.DefaultSimulationParams()
	params.DurationMonths = 8
	result := service.Simulate(params)

	var buf bytes.Buffer
	printDashboard(&buf, params, result, 1)

	rows := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, " oz") && (strings.Contains(line, "Month ") || strings.Contains(line, "Initial")) {
			rows++
		}
	}
	assert.Equal(t, 9, rows)
}
