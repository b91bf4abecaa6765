package service

import (
	"strings"
	"testing"
)

func specByFile(t *testing.T, file string) tableSpec {
	t.Helper()
	for _, s := range tableSpecs {
		if s.File == file {
			return s
		}
	}
	t.Fatalf("no table spec for %s", file)
	return tableSpec{}
}

func TestCheckHeader(t *testing.T) {
	spec := specByFile(t, "movies.csv")

	if err := checkHeader(spec, []string{"movieId", "title", "genres"}); err != nil {
		t.Errorf("valid header rejected: %v", err)
	}
	// 列数不符
	if err := checkHeader(spec, []string{"movieId", "title"}); err == nil {
		t.Error("short header accepted")
	}
	// 列名不符
	if err := checkHeader(spec, []string{"movieId", "name", "genres"}); err == nil {
		t.Error("renamed column accepted")
	}
	// 容许首尾空白
	if err := checkHeader(spec, []string{"movieId", " title ", "genres"}); err != nil {
		t.Errorf("padded header rejected: %v", err)
	}
}

func TestConvertMovie(t *testing.T) {
	row, err := convertMovie([]string{"1", "Toy Story (1995)", "Animation|Comedy"})
	if err != nil {
		t.Fatalf("convertMovie: %v", err)
	}
	if row[0] != int64(1) || row[1] != "Toy Story (1995)" {
		t.Errorf("row = %v", row)
	}

	if _, err := convertMovie([]string{"abc", "x", "y"}); err == nil {
		t.Error("non-numeric movieId accepted")
	}
}

func TestConvertRating(t *testing.T) {
	row, err := convertRating([]string{"7", "296", "4.5", "1147880044"})
	if err != nil {
		t.Fatalf("convertRating: %v", err)
	}
	if row[0] != int64(7) || row[2] != 4.5 || row[3] != int64(1147880044) {
		t.Errorf("row = %v", row)
	}

	if _, err := convertRating([]string{"7", "296", "bad", "1"}); err == nil {
		t.Error("non-numeric rating accepted")
	}
}

func TestConvertTag(t *testing.T) {
	row, err := convertTag([]string{"3", "260", "classic sci-fi", "1439472355"})
	if err != nil {
		t.Fatalf("convertTag: %v", err)
	}
	if row[2] != "classic sci-fi" {
		t.Errorf("tag = %v", row[2])
	}
}

func TestConvertGenomeScore(t *testing.T) {
	row, err := convertGenomeScore([]string{"1", "2", "0.02375"})
	if err != nil {
		t.Fatalf("convertGenomeScore: %v", err)
	}
	if row[2] != 0.02375 {
		t.Errorf("relevance = %v", row[2])
	}
}

func TestConvertLinkMissingIDs(t *testing.T) {
	// imdb/tmdb 可能缺失，空串要落成 NULL 而不是空字符串
	row, err := convertLink([]string{"5", "0113041", ""})
	if err != nil {
		t.Fatalf("convertLink: %v", err)
	}
	if row[1] != "0113041" {
		t.Errorf("imdbId = %v", row[1])
	}
	if row[2] != nil {
		t.Errorf("tmdbId = %v, want nil", row[2])
	}
}

func TestTableSpecsCoverAllFiles(t *testing.T) {
	want := []string{
		"movies.csv", "ratings.csv", "tags.csv",
		"genome-tags.csv", "genome-scores.csv", "links.csv",
	}
	if len(tableSpecs) != len(want) {
		t.Fatalf("len = %d, want %d", len(tableSpecs), len(want))
	}
	for _, file := range want {
		spec := specByFile(t, file)
		if spec.Convert == nil {
			t.Errorf("%s has no converter", file)
		}
		if !strings.Contains(spec.DDL, "CREATE TABLE "+spec.Table) {
			t.Errorf("%s DDL does not create %s", file, spec.Table)
		}
	}
}
