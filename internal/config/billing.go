package config

type BillingConfig struct {
	InvoiceDueDays      int    `yaml:"invoice_due_days"`
	InvoiceNumberPrefix string `yaml:"invoice_number_prefix"`
	Currency            string `yaml:"currency"`
}

func loadBillingConfig() *BillingConfig {
	return &BillingConfig{
		InvoiceDueDays:      getEnvAsInt("INVOICE_DUE_DAYS", 30),
		InvoiceNumberPrefix: getEnv("INVOICE_NUMBER_PREFIX", "INV"),
		Currency:            getEnv("INVOICE_CURRENCY", "USD"),
	}
}
