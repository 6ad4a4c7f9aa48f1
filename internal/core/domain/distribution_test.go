package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mason/internal/core/domain"
)

func TestParseDistSpec(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    domain.DistSpec
		wantErr bool
	}{
		{
			name: "simple",
			path: "/builds/linux-64/numpy-1.9.2-py27_0.tar.bz2",
			want: domain.DistSpec{
				Package:  "numpy",
				Version:  "1.9.2",
				Platform: "linux-64",
				Basename: "numpy-1.9.2-py27_0.tar.bz2",
			},
		},
		{
			name: "dashed package name",
			path: "scikit-learn-0.17-np110py34_1.tar.bz2",
			want: domain.DistSpec{
				Package:  "scikit-learn",
				Version:  "0.17",
				Platform: "linux-64",
				Basename: "scikit-learn-0.17-np110py34_1.tar.bz2",
			},
		},
		{
			name: "conda v2 format",
			path: "numpy-1.9.2-py27_0.conda",
			want: domain.DistSpec{
				Package:  "numpy",
				Version:  "1.9.2",
				Platform: "linux-64",
				Basename: "numpy-1.9.2-py27_0.conda",
			},
		},
		{
			name:    "unknown extension",
			path:    "numpy-1.9.2-py27_0.zip",
			wantErr: true,
		},
		{
			name:    "too few components",
			path:    "numpy.tar.bz2",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := domain.ParseDistSpec(tt.path, "linux-64")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, spec)
		})
	}
}
