package language

var instructions = map[string]string{
	Korean:   "응답은 반드시 한국어로 작성해주세요.",
	English:  "Please respond in English.",
	Japanese: "日本語で回答してください。",
	Chinese:  "请用中文回答。",
}

// Instruction returns the prompt suffix asking the model to answer in lang.
func Instruction(lang string) string {
	if v, ok := instructions[lang]; ok {
		return v
	}
	return instructions[Default]
}

// Message keys for client facing strings.
const (
	MsgSuccess         = "success"
	MsgError           = "error"
	MsgInvalidRequest  = "invalidRequest"
	MsgImageRequired   = "imageRequired"
	MsgAnalysisFailed  = "analysisFailed"
	MsgWeatherFailed   = "weatherFailed"
	MsgShareNotFound   = "shareNotFound"
	MsgShareSaveFailed = "shareSaveFailed"
)

var messages = map[string]map[string]string{
	MsgSuccess: {
		Korean:   "성공적으로 처리되었습니다.",
		English:  "Successfully processed.",
		Japanese: "正常に処理されました。",
		Chinese:  "处理成功。",
	},
	MsgError: {
		Korean:   "오류가 발생했습니다.",
		English:  "An error occurred.",
		Japanese: "エラーが発生しました。",
		Chinese:  "发生错误。",
	},
	MsgInvalidRequest: {
		Korean:   "잘못된 요청입니다.",
		English:  "Invalid request.",
		Japanese: "無効なリクエストです。",
		Chinese:  "无效请求。",
	},
	MsgImageRequired: {
		Korean:   "이미지 파일이 필요합니다.",
		English:  "An image file is required.",
		Japanese: "画像ファイルが必要です。",
		Chinese:  "需要图片文件。",
	},
	MsgAnalysisFailed: {
		Korean:   "분석 중 오류가 발생했습니다.",
		English:  "An error occurred during analysis.",
		Japanese: "分析中にエラーが発生しました。",
		Chinese:  "分析过程中发生错误。",
	},
	MsgWeatherFailed: {
		Korean:   "날씨 정보를 가져오지 못했습니다.",
		English:  "Failed to fetch weather data",
		Japanese: "天気情報を取得できませんでした。",
		Chinese:  "获取天气数据失败。",
	},
	MsgShareNotFound: {
		Korean:   "결과를 찾을 수 없습니다.",
		English:  "Result not found.",
		Japanese: "結果が見つかりません。",
		Chinese:  "未找到结果。",
	},
	MsgShareSaveFailed: {
		Korean:   "결과 저장에 실패했습니다.",
		English:  "Failed to save the result.",
		Japanese: "結果の保存に失敗しました。",
		Chinese:  "保存结果失败。",
	},
}

// Message returns the localized string for key, falling back to Korean and
// then to the generic success message.
func Message(key, lang string) string {
	table, ok := messages[key]
	if !ok {
		return messages[MsgSuccess][Default]
	}
	if v, ok := table[lang]; ok {
		return v
	}
	return table[Default]
}
