package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{name: "valid limit only", cfg: Config{Limit: 10}},
		{name: "valid offset only", cfg: Config{Offset: 5}},
		{name: "valid limit and offset", cfg: Config{Limit: 10, Offset: 5}},
		{name: "negative limit invalid", cfg: Config{Limit: -1}, wantErr: true, errMsg: "non-negative"},
		{name: "negative offset invalid", cfg: Config{Offset: -1}, wantErr: true, errMsg: "non-negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	rows := []string{"a", "b", "c", "d", "e"}
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{name: "inactive", cfg: Config{}, want: rows},
		{name: "limit", cfg: Config{Limit: 2}, want: []string{"a", "b"}},
		{name: "offset and limit", cfg: Config{Offset: 3, Limit: 5}, want: []string{"d", "e"}},
		{name: "offset past end", cfg: Config{Offset: 9}, want: []string{}},
		{name: "limit longer than rows", cfg: Config{Limit: 10}, want: rows},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.cfg, rows))
		})
	}
}

func TestWindowFollowsSelection(t *testing.T) {
	w := NewWindow(3)

	w.Follow(2, 10)
	assert.Equal(t, 0, w.Offset())

	w.Follow(3, 10)
	assert.Equal(t, 1, w.Offset())

	w.Follow(9, 10)
	assert.Equal(t, 7, w.Offset())

	w.Follow(8, 10)
	assert.Equal(t, 7, w.Offset(), "selection still visible, no scroll")

	w.Follow(4, 10)
	assert.Equal(t, 4, w.Offset())

	above, below := w.Hidden(10)
	assert.Equal(t, 4, above)
	assert.Equal(t, 3, below)

	w.Follow(-1, 10)
	assert.Equal(t, 0, w.Offset())
}

func TestWindowShortListNeverScrolls(t *testing.T) {
	w := NewWindow(5)
	w.Follow(2, 3)
	assert.Equal(t, 0, w.Offset())
	assert.Equal(t, []int{1, 2, 3}, Apply(w.Config(), []int{1, 2, 3}))
}

func TestWindowUnlimited(t *testing.T) {
	w := NewWindow(0)
	w.Follow(40, 50)
	assert.Equal(t, 0, w.Offset())
	assert.False(t, w.Config().IsActive())
}

func TestWindowShrinkingList(t *testing.T) {
	w := NewWindow(3)
	w.Follow(9, 10)
	require.Equal(t, 7, w.Offset())

	w.Follow(4, 5)
	assert.Equal(t, 2, w.Offset())
}
