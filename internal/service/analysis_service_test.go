package service

import (
	"testing"

	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/model"
)

func summaryRow(movieID int64, title, genre string, year int, avg float64, count int64) model.SummaryRow {
	return model.SummaryRow{
		MovieID:     movieID,
		Title:       title,
		Genre:       genre,
		Year:        &year,
		AvgRating:   &avg,
		RatingCount: count,
	}
}

func TestDistinctMovies(t *testing.T) {
	rows := []model.SummaryRow{
		summaryRow(1, "A", "Drama", 1994, 4.5, 10),
		summaryRow(1, "A", "War", 1994, 4.5, 10),
		summaryRow(2, "B", "Comedy", 2001, 3.2, 5),
	}

	got := distinctMovies(rows)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// 保留首次出现的行
	if got[0].MovieID != 1 || got[0].Genre != "Drama" {
		t.Errorf("first = %+v", got[0])
	}
}

func TestLeaderboardLess(t *testing.T) {
	a := model.LeaderboardEntry{Title: "A", AvgRating: 4.0, RatingCount: 100}
	b := model.LeaderboardEntry{Title: "B", AvgRating: 4.5, RatingCount: 50}

	// 评分数优先于平均分
	if !leaderboardLess(a, b) {
		t.Error("higher rating count must rank first")
	}

	// 评分数相同比平均分
	b.RatingCount = 100
	if leaderboardLess(a, b) {
		t.Error("higher avg must rank first on equal counts")
	}

	// 全平手按标题兜底
	b.AvgRating = 4.0
	if !leaderboardLess(a, b) {
		t.Error("title must break full ties")
	}
}

func TestToEntry(t *testing.T) {
	r := summaryRow(7, "Se7en (1995)", "Thriller", 1995, 4.2, 300)
	e := toEntry(r)
	if e.MovieID != 7 || e.Year != 1995 || e.AvgRating != 4.2 || e.RatingCount != 300 {
		t.Errorf("entry = %+v", e)
	}
}
