package consts

// ToolName identifies a tool exposed to the language model.
type ToolName string

const (
	ToolStockPrice  ToolName = "get_stock_price"
	ToolCompanyInfo ToolName = "get_company_info"
	ToolCompanyNews ToolName = "get_company_news"
	ToolCandlestick ToolName = "generate_candlestick_chart"
)

// DefaultStockCode is used when the model calls the price tool without a code.
const DefaultStockCode = "600519.SH"

func (n ToolName) String() string { return string(n) }
