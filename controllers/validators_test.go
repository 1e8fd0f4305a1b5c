package controllers

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidators(t *testing.T) {
	require.NoError(t, RegisterValidators())

	type filters struct {
		Status   string `binding:"omitempty,eq=all|issue_status"`
		Severity string `binding:"omitempty,eq=all|issue_severity"`
	}

	testCases := []struct {
		name    string
		input   filters
		wantErr bool
	}{
		{"empty", filters{}, false},
		{"all", filters{Status: "all", Severity: "all"}, false},
		{"known values", filters{Status: "in_progress", Severity: "critical"}, false},
		{"unknown status", filters{Status: "archived"}, true},
		{"unknown severity", filters{Severity: "urgent"}, true},
		{"severity in status field", filters{Status: "critical"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
