package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGrid(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"2x3", 2, 3, false},
		{"1x1", 1, 1, false},
		{"0x2", 0, 0, true},
		{"3", 0, 0, true},
		{"ax2", 0, 0, true},
		{"2x-1", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := parseGrid(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, []int{tt.w, tt.h}, []int{w, h})
		})
	}
}
