package pipeline

import (
	"reflect"
	"testing"

	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/model"
)

func TestExpandGenres(t *testing.T) {
	tests := []struct {
		genres string
		want   []string
	}{
		{"Drama|War", []string{"Drama", "War"}},
		{"Action", []string{"Action"}},
		// 去重但保持首次出现的顺序
		{"Action|Drama|Action", []string{"Action", "Drama"}},
		// 占位值和空串都必须炸出恰好一行，不能静默丢弃
		{"(no genres listed)", []string{"(no genres listed)"}},
		{"", []string{NoGenresSentinel}},
		{"   ", []string{NoGenresSentinel}},
		{"||", []string{NoGenresSentinel}},
	}

	for _, tt := range tests {
		got := ExpandGenres(tt.genres)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ExpandGenres(%q) = %v, want %v", tt.genres, got, tt.want)
		}
	}
}

func TestExpandGenresFanOutCount(t *testing.T) {
	// N 个去重类型恰好 N 行
	if got := len(ExpandGenres("Comedy|Romance|Drama")); got != 3 {
		t.Errorf("fan-out = %d, want 3", got)
	}
}

func TestHasDuplicateGenres(t *testing.T) {
	if HasDuplicateGenres("Drama|War") {
		t.Error("Drama|War should not report duplicates")
	}
	if !HasDuplicateGenres("Action|Drama|Action") {
		t.Error("Action|Drama|Action should report duplicates")
	}
}

func TestCountDuplicateGenres(t *testing.T) {
	movies := []model.Movie{
		{MovieID: 1, Genres: "Drama|War"},
		{MovieID: 2, Genres: "Action|Action"},
		{MovieID: 3, Genres: "Comedy"},
	}
	if got := CountDuplicateGenres(movies); got != 1 {
		t.Errorf("CountDuplicateGenres = %d, want 1", got)
	}
}
