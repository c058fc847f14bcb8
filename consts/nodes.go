package consts

import "github.com/cloudwego/eino/compose"

// 工作流节点
const (
	Router           = "router"
	DataRetrieval    = "data_retrieval"
	Analysis         = "analysis"
	ReportGeneration = "report_generation"
	GeneralResponse  = "general_response"

	// End 终止节点
	End = compose.END
)

const WorkflowName = "cortexfin_workflow"
