package dto

type DashboardSummaryResponse struct {
	TotalProjects   int64 `json:"total_projects"`
	TotalTasks      int64 `json:"total_tasks"`
	CompletedTasks  int64 `json:"completed_tasks"`
	InProgressTasks int64 `json:"in_progress_tasks"`
	OverdueTasks    int64 `json:"overdue_tasks"`
}
