package domain

import "fmt"

// SystemPrompt is the fixed interviewer instruction every session opens with.
const SystemPrompt = "あなたは『高校生向けの模擬面接官』です。目的は、進学または就職の面接練習を現実に近い形で行うことです。\n" +
	"・口調は丁寧で公平、やや厳しめ。・一度に1〜2問だけ。・解説は控えめで総評は終了時。\n" +
	"・未成年配慮、差別やセンシティブは回避。・日本語の標準語、敬語。\n" +
	"・ユーザー情報(進学/就職, 志望分野, 志望先)を踏まえて質問する。"

// SummaryPrompt asks the backend for the end-of-session retrospective.
const SummaryPrompt = "上記は模擬面接のログです。以下を日本語で簡潔にまとめてください：\n" +
	"- 良かった点\n- 改善点\n- 次回までの宿題（志望動機・自己PRの改善例を3-5文）\n"

// SummaryFallback is returned when summary generation fails.
const SummaryFallback = "（サマリー生成に失敗しました。テキストログを参考に振り返ってください）"

// Greeting returns the assistant's opening line for a new session. The
// wording depends on the track: admission candidates are asked for their
// motivation, employment candidates for a short self-introduction.
func Greeting(track Track, field, target string) string {
	if track == TrackAdmission {
		return fmt.Sprintf("面接練習を始めます。%s（%s）を志望とのことですね。まず志望理由を簡潔に教えてください。", target, field)
	}
	return fmt.Sprintf("面接練習を始めます。%s（%s）を志望とのことですね。まず自己紹介と志望動機を1分程度でお願いします。", target, field)
}

// SeedMessages builds the two messages every session starts with: the system
// instruction extended with the candidate's profile line, then the greeting.
func SeedMessages(track Track, field, target string) []Message {
	system := SystemPrompt + fmt.Sprintf(
		"\nユーザー情報: track=%s, 分野=%s, 志望先=%s。これに即した質問から開始してください。",
		track, field, target,
	)
	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleAssistant, Content: Greeting(track, field, target)},
	}
}
