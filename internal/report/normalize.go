package report

import "strings"

// Phrase 一条完成情况规范化规则
type Phrase struct {
	Vague    string
	Explicit string
}

// CompletionPhrases 模糊表述 → 带完成度的标准表述
// 顺序即优先级：同一位置能匹配多条时取靠前的一条。
var CompletionPhrases = []Phrase{
	{"完成一部分", "推进中，完成度50%"},
	{"差不多完成了", "接近完成，完成度90%"},
	{"刚起步", "启动阶段，完成度10%"},
	{"还没开始", "未开始，完成度0%"},
	{"完成了", "已完成，完成度100%"},
}

const (
	percentMarker  = "完成度"
	completionWord = "完成"
	doneWord       = "已完成"

	fullSuffix = "，完成度100%"
	// UnknownSuffix 无法判断完成度时追加的占位标记，下游只当作普通文本
	UnknownSuffix = "，完成度XX%"
)

var completionReplacer = newPhraseReplacer(CompletionPhrases)

func newPhraseReplacer(phrases []Phrase) *strings.Replacer {
	oldnew := make([]string, 0, len(phrases)*2)
	for _, p := range phrases {
		oldnew = append(oldnew, p.Vague, p.Explicit)
	}
	return strings.NewReplacer(oldnew...)
}

// Normalize 规范化完成情况描述
func Normalize(text string) string {
	if text == "" {
		return text
	}

	text = completionReplacer.Replace(text)

	if !strings.Contains(text, percentMarker) && strings.Contains(text, completionWord) {
		if strings.Contains(text, doneWord) {
			text += fullSuffix
		} else {
			text += UnknownSuffix
		}
	}
	return text
}
