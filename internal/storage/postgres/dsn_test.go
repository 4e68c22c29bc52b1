package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactDSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{
			name: "url",
			dsn:  "postgres://portfolio:s3cret@db:5432/portfolio?sslmode=disable",
			want: "postgres://portfolio:xxxxx@db:5432/portfolio?sslmode=disable",
		},
		{
			name: "url without password",
			dsn:  "postgres://portfolio@db:5432/portfolio",
			want: "postgres://portfolio@db:5432/portfolio",
		},
		{
			name: "key value",
			dsn:  "host=db port=5432 user=portfolio password=s3cret dbname=portfolio sslmode=disable",
			want: "host=db port=5432 user=portfolio password=xxxxx dbname=portfolio sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RedactDSN(tt.dsn))
		})
	}
}
