package model

// Movie 原始电影表（movies.csv，逐字导入）
type Movie struct {
	MovieID int64  `json:"movieId" db:"movieId"`
	Title   string `json:"title" db:"title"`
	Genres  string `json:"genres" db:"genres"` // 竖线分隔的类型列表
}

// Rating 用户评分（ratings.csv）
type Rating struct {
	UserID    int64   `json:"userId" db:"userId"`
	MovieID   int64   `json:"movieId" db:"movieId"`
	Rating    float64 `json:"rating" db:"rating"`
	Timestamp int64   `json:"timestamp" db:"timestamp"`
}

// Tag 用户自由打的标签（tags.csv）
type Tag struct {
	UserID    int64  `json:"userId" db:"userId"`
	MovieID   int64  `json:"movieId" db:"movieId"`
	Tag       string `json:"tag" db:"tag"`
	Timestamp int64  `json:"timestamp" db:"timestamp"`
}

// GenomeTag 基因组标签字典（genome-tags.csv）
type GenomeTag struct {
	TagID int64  `json:"tagId" db:"tagId"`
	Tag   string `json:"tag" db:"tag"`
}

// GenomeScore 电影×标签相关度矩阵（genome-scores.csv）
type GenomeScore struct {
	MovieID   int64   `json:"movieId" db:"movieId"`
	TagID     int64   `json:"tagId" db:"tagId"`
	Relevance float64 `json:"relevance" db:"relevance"`
}

// Link 外部站点 ID（links.csv，核心管道不使用）
type Link struct {
	MovieID int64   `json:"movieId" db:"movieId"`
	ImdbID  *string `json:"imdbId" db:"imdbId"`
	TmdbID  *string `json:"tmdbId" db:"tmdbId"`
}

// SummaryRow 汇总表的一行（每个 电影×类型 组合一行）
// Year/AvgRating/标签字段可为空；清洗之后 Year 与 AvgRating 必定非空
type SummaryRow struct {
	MovieID           int64    `json:"movieId" db:"movieId"`
	Title             string   `json:"title" db:"title"`
	Year              *int     `json:"year" db:"year"`
	Genre             string   `json:"genre" db:"genre"`
	AvgRating         *float64 `json:"avg_rating" db:"avg_rating"`
	RatingCount       int64    `json:"rating_count" db:"rating_count"`
	TopGenomeTag      *string  `json:"top_genome_tag" db:"top_genome_tag"`
	GenomeRelevance   *float64 `json:"genome_relevance" db:"genome_relevance"`
	MostCommonUserTag *string  `json:"most_common_user_tag" db:"most_common_user_tag"`
}

// CoverageItem 单个字段的缺失统计
type CoverageItem struct {
	MissingMovies int64   `json:"missing_movies"` // 缺失该字段的电影数（去重）
	Percent       float64 `json:"percent"`        // 占电影总数的百分比（保留 2 位）
}

// CoverageReport 汇总表完整性报告
type CoverageReport struct {
	TotalRows         int64        `json:"total_rows"`
	TotalMovies       int64        `json:"total_movies"`
	TopGenomeTag      CoverageItem `json:"top_genome_tag"`
	GenomeRelevance   CoverageItem `json:"genome_relevance"`
	MostCommonUserTag CoverageItem `json:"most_common_user_tag"`
}

// BuildReport 一次汇总表重建的统计结果
type BuildReport struct {
	DuplicateGenreMovies int            `json:"duplicate_genre_movies"` // 类型串含重复项的电影数（应为 0）
	InitialRows          int            `json:"initial_rows"`
	RemovedYearRows      int            `json:"removed_year_rows"`
	RemovedRatingRows    int            `json:"removed_rating_rows"`
	FinalRows            int            `json:"final_rows"`
	Coverage             CoverageReport `json:"coverage"`
}

// LeaderboardEntry 榜单条目（按 评分数 desc、平均分 desc 排序）
type LeaderboardEntry struct {
	MovieID     int64   `json:"movieId"`
	Title       string  `json:"title"`
	Year        int     `json:"year"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int64   `json:"rating_count"`
}

// Leaderboard 一个分组（年代或类型）的榜单
type Leaderboard struct {
	Group   string             `json:"group"`
	Entries []LeaderboardEntry `json:"entries"`
}

// Correlation 年份与平均分的 Spearman 相关结果
type Correlation struct {
	N      int     `json:"n"`
	Rho    float64 `json:"rho"`
	PValue float64 `json:"p_value"`
}

// GenreTest 某类型 vs 其余电影的 Mann-Whitney 检验结果
type GenreTest struct {
	Genre     string  `json:"genre"`
	NIn       int     `json:"n_in"`
	NOut      int     `json:"n_out"`
	U         float64 `json:"u"`
	PValue    float64 `json:"p_value"`
	AdjustedP float64 `json:"adjusted_p"` // Benjamini-Hochberg 校正后
}
