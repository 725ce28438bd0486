package core

type AppConfig interface {
	GetRuntimePath() string
	GetDatabasePath() string
	GetDatabaseURL() string
	GetStoreDriver() string
	GetUserID() string
	GetMaintenanceSchedule() string
}

type LLMConfig interface {
	GetProvider() string
	GetModel() string
	GetBaseURL() string
	GetAPIKey() string
	GetFunctionURL() string
	GetFunctionToken() string
}
