package decorator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThreadID(t *testing.T) {
	tests := []struct {
		name   string
		thread *Thread
		want   string
	}{
		{"nil", nil, ""},
		{"empty", &Thread{}, ""},
		{"own", &Thread{ID: "thid", PID: "pthid"}, "thid"},
		{"parent only", &Thread{PID: "pthid"}, "pthid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ThreadID(tt.thread))
		})
	}
}
