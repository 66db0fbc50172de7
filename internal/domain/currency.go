package domain

// CurrencyTND is the Tunisian dinar. Monetary amounts are carried as int64
// millimes (1 TND = 1000 millimes).
const CurrencyTND = "TND"
