package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleVersion(t *testing.T) {
	tests := []struct {
		name string
		info *debug.BuildInfo
		want string
	}{
		{
			name: "dependency",
			info: &debug.BuildInfo{Deps: []*debug.Module{{Path: modulePath, Version: "v1.2.3"}}},
			want: "v1.2.3",
		},
		{
			name: "main module",
			info: &debug.BuildInfo{Main: debug.Module{Path: modulePath, Version: "v0.4.0"}},
			want: "v0.4.0",
		},
		{
			name: "devel",
			info: &debug.BuildInfo{Main: debug.Module{Path: modulePath, Version: "(devel)"}},
			want: "dev",
		},
		{
			name: "unrelated",
			info: &debug.BuildInfo{Main: debug.Module{Path: "example.com/app", Version: "v9.0.0"}},
			want: "dev",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, moduleVersion(tt.info))
		})
	}
}

func TestInfoAndString(t *testing.T) {
	v, commit, date := Info()
	assert.Equal(t, Version, v)
	assert.Equal(t, GitCommit, commit)
	assert.Equal(t, BuildDate, date)
	assert.Contains(t, String(), "commit "+GitCommit)
}
