package pipeline

import (
	"regexp"
	"strconv"
)

// 年份提取策略，按顺序尝试，命中即停
// 只认小括号包裹的 4 位数字；方括号、花括号、裸数字一律不算年份
type yearStrategy struct {
	name string
	re   *regexp.Regexp
}

var yearStrategies = []yearStrategy{
	// 标准形式 "Title (YYYY)"：取串尾最后一对括号
	{name: "trailing_paren", re: regexp.MustCompile(`\((\d{4})\)\s*$`)},
	// 兜底：任意位置恰好包含 4 位数字的括号对，如 "Title (1994) Special Edition"
	// 多处命中取最后一处（年份括号习惯放在标题末尾附近）
	{name: "any_paren", re: regexp.MustCompile(`\((\d{4})\)`)},
}

var anyFourDigits = regexp.MustCompile(`\d{4}`)

// ExtractYear 从标题中提取 4 位年份，提取不到返回 nil（绝不报错）
func ExtractYear(title string) *int {
	for _, s := range yearStrategies {
		ms := s.re.FindAllStringSubmatch(title, -1)
		if len(ms) == 0 {
			continue
		}
		year, err := strconv.Atoi(ms[len(ms)-1][1])
		if err != nil {
			continue
		}
		return &year
	}
	return nil
}

// 标题诊断分类（仅用于可选的诊断报告，不参与生产表）
const (
	TitleYearExtracted       = "year_extracted"
	TitleNoFourDigits        = "no_4_digits_found"
	TitleFourDigitsBadFormat = "has_4_digits_wrong_format"
)

// ClassifyTitle 对无法提取年份的标题做归类
func ClassifyTitle(title string) string {
	if ExtractYear(title) != nil {
		return TitleYearExtracted
	}
	if !anyFourDigits.MatchString(title) {
		return TitleNoFourDigits
	}
	return TitleFourDigitsBadFormat
}
