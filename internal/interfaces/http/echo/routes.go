package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, errs *ErrorMapper, importHandler *ImportHandler, directoryHandler *DirectoryHandler) {
	api := server.Group("/api/v1", RequireCredential(errs))

	api.POST("/imports/employees", importHandler.UploadSpreadsheet)
	api.GET("/imports/employees/sample", importHandler.DownloadSample)
	api.POST("/imports/employees/:upload_id/submit", importHandler.SubmitUpload)
	api.DELETE("/imports/employees/:upload_id", importHandler.ClearUpload)
	api.POST("/employees", importHandler.OnboardEmployee)

	api.POST("/views", directoryHandler.OpenView)
	api.GET("/views/:id", directoryHandler.GetView)
	api.DELETE("/views/:id", directoryHandler.CloseView)
	api.PUT("/views/:id/page", directoryHandler.SetPage)
	api.PUT("/views/:id/filters", directoryHandler.SetFilters)
	api.PUT("/views/:id/search", directoryHandler.SetSearch)
	api.POST("/views/:id/refresh", directoryHandler.Refresh)
	api.POST("/views/:id/selection/all", directoryHandler.ToggleSelectAll)
	api.POST("/views/:id/selection/:employee_id", directoryHandler.ToggleSelection)
	api.POST("/views/:id/invite", directoryHandler.Invite)
	api.POST("/views/:id/delete/confirm", directoryHandler.ConfirmDelete)
	api.POST("/views/:id/delete/:employee_id", directoryHandler.ArmDelete)
	api.DELETE("/views/:id/delete", directoryHandler.CancelDelete)
}
