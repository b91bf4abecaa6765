package pipeline

// GenomeTagPick 某部电影相关度最高的基因组标签
type GenomeTagPick struct {
	Tag       string
	Relevance float64
}

type genomeCandidate struct {
	tagID     int64
	tag       string
	relevance float64
}

// GenomePicker 按相关度为每部电影选出唯一的基因组标签
// 相关度相同按 tagId 升序定胜负，保证跨运行稳定
type GenomePicker struct {
	top *TopK[int64, genomeCandidate]
}

// NewGenomePicker 创建基因组标签选择器
func NewGenomePicker() *GenomePicker {
	return &GenomePicker{
		top: NewTopK[int64, genomeCandidate](1, func(a, b genomeCandidate) bool {
			if a.relevance != b.relevance {
				return a.relevance > b.relevance
			}
			return a.tagID < b.tagID
		}),
	}
}

// Offer 投放一条 (movieId, tagId, relevance) 候选
func (p *GenomePicker) Offer(movieID, tagID int64, tag string, relevance float64) {
	p.top.Offer(movieID, genomeCandidate{tagID: tagID, tag: tag, relevance: relevance})
}

// Best 每部有候选的电影的最终选择；无候选的电影不出现在结果里
func (p *GenomePicker) Best() map[int64]GenomeTagPick {
	out := make(map[int64]GenomeTagPick)
	for movieID, c := range p.top.First() {
		out[movieID] = GenomeTagPick{Tag: c.tag, Relevance: c.relevance}
	}
	return out
}

type userTagCandidate struct {
	tag   string
	count int64
}

// UserTagPicker 先把 (movieId, tag) 出现次数聚合成频次，再选每部电影频次最高的标签
// 频次相同按标签字典序升序定胜负
type UserTagPicker struct {
	counts map[int64]map[string]int64
}

// NewUserTagPicker 创建用户标签选择器
func NewUserTagPicker() *UserTagPicker {
	return &UserTagPicker{counts: make(map[int64]map[string]int64)}
}

// Offer 投放一条原始 (movieId, tag) 记录
func (p *UserTagPicker) Offer(movieID int64, tag string) {
	m := p.counts[movieID]
	if m == nil {
		m = make(map[string]int64)
		p.counts[movieID] = m
	}
	m[tag]++
}

// Best 每部有标签的电影最常见的用户标签
func (p *UserTagPicker) Best() map[int64]string {
	top := NewTopK[int64, userTagCandidate](1, func(a, b userTagCandidate) bool {
		if a.count != b.count {
			return a.count > b.count
		}
		return a.tag < b.tag
	})
	for movieID, tags := range p.counts {
		for tag, count := range tags {
			top.Offer(movieID, userTagCandidate{tag: tag, count: count})
		}
	}

	out := make(map[int64]string, len(p.counts))
	for movieID, c := range top.First() {
		out[movieID] = c.tag
	}
	return out
}
