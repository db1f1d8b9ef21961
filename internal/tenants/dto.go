package tenants

// ProvisionTenantRequest creates a new tenant for the calling principal.
type ProvisionTenantRequest struct {
	TenantName    string `json:"tenant_name" validate:"required,min=2"`
	Slug          string `json:"slug" validate:"required,min=2"`
	OwnerFullName string `json:"owner_full_name" validate:"required,min=3"`
}

// ProvisionTenantResponse returns everything needed to render the new
// workspace without a follow-up read.
type ProvisionTenantResponse struct {
	Tenant        Tenant         `json:"tenant"`
	CashRegisters []CashRegister `json:"cash_registers"`
	TipPool       TipPool        `json:"tip_pool"`
}
