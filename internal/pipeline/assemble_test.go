package pipeline

import (
	"reflect"
	"testing"

	"github.com/DipanshuK2003/Netflix-Data-Analysis/internal/model"
)

// 三部电影的端到端场景：
// M1 年份可提取且有评分（留下），M2 年份不可提取（删），M3 没有评分（删）
func endToEndInput() AssembleInput {
	movies := []model.Movie{
		{MovieID: 1, Title: "Shawshank Redemption, The (1994)", Genres: "Drama|War"},
		{MovieID: 2, Title: "Untitled Project", Genres: "Comedy"},
		{MovieID: 3, Title: "Spirited Away (2001)", Genres: "Animation"},
	}

	ratings := NewRatingAccumulator()
	for i := 0; i < 5; i++ {
		ratings.Add(1, 4)
		ratings.Add(1, 5)
		ratings.Add(2, 3)
	}
	// M3 一条评分都没有

	genome := NewGenomePicker()
	genome.Offer(1, 10, "tagA", 0.9)
	genome.Offer(1, 20, "tagB", 0.95)

	userTags := NewUserTagPicker()
	for tag, n := range map[string]int{"funny": 3, "dark": 5, "twist": 5} {
		for i := 0; i < n; i++ {
			userTags.Offer(1, tag)
		}
	}

	return AssembleInput{
		Movies:   movies,
		Ratings:  ratings,
		Genome:   genome.Best(),
		UserTags: userTags.Best(),
	}
}

func TestAssembleFanOut(t *testing.T) {
	rows := Assemble(endToEndInput())

	// 2 + 1 + 1 行，按 (movieId, genre) 升序
	if len(rows) != 4 {
		t.Fatalf("len = %d, want 4", len(rows))
	}
	if rows[0].Genre != "Drama" || rows[1].Genre != "War" {
		t.Errorf("movie 1 genres = %q, %q", rows[0].Genre, rows[1].Genre)
	}

	// 外连接语义：没评分的 M3 照样出现，count=0、均值为 nil
	m3 := rows[3]
	if m3.MovieID != 3 || m3.RatingCount != 0 || m3.AvgRating != nil {
		t.Errorf("movie 3 row = %+v, want count=0 avg=nil", m3)
	}

	// M1 的电影级字段在两条类型行上完全一致
	if *rows[0].AvgRating != 4.5 || rows[0].RatingCount != 10 {
		t.Errorf("movie 1 rating = %v/%d, want 4.5/10", *rows[0].AvgRating, rows[0].RatingCount)
	}
	if *rows[0].TopGenomeTag != "tagB" || *rows[0].GenomeRelevance != 0.95 {
		t.Errorf("movie 1 genome = %v/%v", *rows[0].TopGenomeTag, *rows[0].GenomeRelevance)
	}
	if *rows[0].MostCommonUserTag != "dark" {
		t.Errorf("movie 1 user tag = %q, want dark", *rows[0].MostCommonUserTag)
	}
	if !reflect.DeepEqual(rows[0].TopGenomeTag, rows[1].TopGenomeTag) {
		t.Error("movie-level fields must not vary per genre row")
	}

	// M2 无标签：空值而不是缺行
	m2 := rows[2]
	if m2.MovieID != 2 || m2.TopGenomeTag != nil || m2.MostCommonUserTag != nil {
		t.Errorf("movie 2 row = %+v, want nil tag fields", m2)
	}
}

func TestFilterCompleteEndToEnd(t *testing.T) {
	rows := Assemble(endToEndInput())
	kept, removedYears, removedRatings := FilterComplete(rows)

	// 只剩 M1 的两条类型行
	if len(kept) != 2 {
		t.Fatalf("kept = %d rows, want 2", len(kept))
	}
	for _, r := range kept {
		if r.MovieID != 1 {
			t.Errorf("unexpected movie %d survived filtering", r.MovieID)
		}
		if r.Year == nil || r.AvgRating == nil {
			t.Errorf("post-filter row has nil year/avg: %+v", r)
		}
	}
	if removedYears != 1 || removedRatings != 1 {
		t.Errorf("removed = %d/%d, want 1/1", removedYears, removedRatings)
	}
}

func TestFilterCompleteRemovesWholeMovie(t *testing.T) {
	year := 1990
	avg := 4.0
	rows := []model.SummaryRow{
		// 同一部电影的两行：一行也不许单独幸存
		{MovieID: 1, Genre: "Drama", Year: nil, AvgRating: &avg},
		{MovieID: 1, Genre: "War", Year: nil, AvgRating: &avg},
		{MovieID: 2, Genre: "Comedy", Year: &year, AvgRating: &avg},
	}

	kept, removedYears, _ := FilterComplete(rows)
	if removedYears != 2 {
		t.Errorf("removedYears = %d, want 2", removedYears)
	}
	if len(kept) != 1 || kept[0].MovieID != 2 {
		t.Errorf("kept = %+v, want only movie 2", kept)
	}
}

func TestFilterCompleteEmptyResult(t *testing.T) {
	// 病态输入把所有行都滤掉：返回空表而不是报错
	rows := []model.SummaryRow{
		{MovieID: 1, Genre: "Drama", Year: nil},
	}
	kept, _, _ := FilterComplete(rows)
	if len(kept) != 0 {
		t.Errorf("kept = %d rows, want 0", len(kept))
	}

	kept, _, _ = FilterComplete(nil)
	if len(kept) != 0 {
		t.Errorf("kept = %d rows on nil input, want 0", len(kept))
	}
}

func TestPipelineIdempotent(t *testing.T) {
	// 相同输入跑两遍，结果必须逐字节一致
	first, fy, fr := FilterComplete(Assemble(endToEndInput()))
	second, sy, sr := FilterComplete(Assemble(endToEndInput()))

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over identical input differ")
	}
	if fy != sy || fr != sr {
		t.Error("removal counts differ between runs")
	}
}

func TestCoverage(t *testing.T) {
	year := 1990
	avg := 4.0
	tag := "classic"
	rel := 0.9

	rows := []model.SummaryRow{
		{MovieID: 1, Genre: "Drama", Year: &year, AvgRating: &avg,
			TopGenomeTag: &tag, GenomeRelevance: &rel, MostCommonUserTag: &tag},
		{MovieID: 1, Genre: "War", Year: &year, AvgRating: &avg,
			TopGenomeTag: &tag, GenomeRelevance: &rel, MostCommonUserTag: &tag},
		{MovieID: 2, Genre: "Comedy", Year: &year, AvgRating: &avg},
	}

	report := Coverage(rows)
	if report.TotalRows != 3 || report.TotalMovies != 2 {
		t.Fatalf("totals = %d/%d, want 3/2", report.TotalRows, report.TotalMovies)
	}
	if report.TopGenomeTag.MissingMovies != 1 || report.TopGenomeTag.Percent != 50.0 {
		t.Errorf("genome tag coverage = %+v, want 1/50.00", report.TopGenomeTag)
	}
	if report.MostCommonUserTag.MissingMovies != 1 {
		t.Errorf("user tag coverage = %+v, want 1 missing", report.MostCommonUserTag)
	}
}

func TestCoverageEmptyTable(t *testing.T) {
	// 空表返回全零，调用方靠这个发现管道退化而不是硬失败
	report := Coverage(nil)
	if report.TotalRows != 0 || report.TotalMovies != 0 {
		t.Errorf("totals = %+v, want zeros", report)
	}
	if report.TopGenomeTag.Percent != 0 {
		t.Errorf("percent = %v, want 0", report.TopGenomeTag.Percent)
	}
}
