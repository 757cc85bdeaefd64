package contracts

type SettingsUpsertRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}
