package consts

// 用户可见的固定文本
const (
	Banner       = "金融多智能体系统启动..."
	ExitHint     = "输入 'exit'、'quit' 或 'q' 退出，'/reset' 清空对话记忆，'/memory' 查看对话记录。"
	PromptPrefix = "[你]: "
	AnswerPrefix = "[AI]: "
	Goodbye      = "再见！"

	GeneralFallback = "抱歉，我无法理解您的请求或执行特定任务。"
	NoResult        = "未能获取到预期结果，请检查AgentState内容。"
	NoState         = "系统未返回任何状态，可能在启动时发生错误。"

	DataStageFailed     = "数据收集失败: %v"
	AnalysisStageFailed = "分析失败: %v"
	ReportStageFailed   = "报告生成失败: %v"
	UnknownTool         = "未知工具: %s"
	ToolOutputHeader    = "工具调用结果 (%s): %s"
)

// 数据源错误
const (
	QuoteParseFailed    = "新浪/腾讯财经数据解析失败或格式不正确"
	QuoteFetchFailed    = "获取股票价格失败: %v"
	ProfileFetchFailed  = "获取公司信息失败: %v"
	ProfileTableMissing = "未找到公司信息表格"
	ProfileTitleOnly    = "未找到详细公司信息表格，但通过标题获取了公司名称。"
	NewsNotFound        = "未找到 '%s' 相关新闻"
	NewsFetchFailed     = "获取新闻失败: %v"
	UnknownDate         = "未知日期"
)

// K线图工具
const (
	ChartNoData     = "没有足够的历史数据来生成K线图。"
	ChartIncomplete = "数据格式不完整，无法生成K线图。"
	ChartTooFew     = "数据不足，无法生成K线图。"
)
