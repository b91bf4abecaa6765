package pipeline

// TopK 通用的"分区内排名取前 K"工具
// 基因组标签、用户标签、年代/类型榜单共用这一个实现
// less 必须给出全序（含决定性的平手规则），结果才能跨运行稳定
type TopK[K comparable, T any] struct {
	k    int
	less func(a, b T) bool // a 应排在 b 之前时返回 true
	best map[K][]T
}

// NewTopK 创建排名器，k 为每个分区保留的条数
func NewTopK[K comparable, T any](k int, less func(a, b T) bool) *TopK[K, T] {
	if k < 1 {
		k = 1
	}
	return &TopK[K, T]{
		k:    k,
		less: less,
		best: make(map[K][]T),
	}
}

// Offer 向某个分区投放一个候选项（插入排序并截断到 K）
func (t *TopK[K, T]) Offer(key K, item T) {
	list := t.best[key]

	// 找到插入位置
	pos := len(list)
	for i, cur := range list {
		if t.less(item, cur) {
			pos = i
			break
		}
	}
	if pos >= t.k {
		return
	}

	list = append(list, item)
	copy(list[pos+1:], list[pos:])
	list[pos] = item
	if len(list) > t.k {
		list = list[:t.k]
	}
	t.best[key] = list
}

// Result 每个分区排好序的前 K 条
func (t *TopK[K, T]) Result() map[K][]T {
	return t.best
}

// First 每个分区的第一名（分区必然非空，无候选的键不会出现）
func (t *TopK[K, T]) First() map[K]T {
	out := make(map[K]T, len(t.best))
	for k, list := range t.best {
		out[k] = list[0]
	}
	return out
}
