package platform

type ProvisionTenantRequest struct {
	Name     string `json:"name"`
	TenantID string `json:"tenant_id"`
}

type SuspendTenantRequest struct {
	Reason string `json:"reason"`
}
