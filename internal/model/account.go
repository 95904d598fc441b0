package model

// AccountType is the QIF account label written in the file header.
type AccountType string

const (
	AccountTypeBank           AccountType = "Bank"
	AccountTypeCreditCard     AccountType = "CCard"
	AccountTypeCash           AccountType = "Cash"
	AccountTypeOtherAsset     AccountType = "Oth A"
	AccountTypeOtherLiability AccountType = "Oth L"
	AccountTypeInvestment     AccountType = "Invst"
)

// DefaultAccountType is used when no account type is given.
const DefaultAccountType = AccountTypeBank

// KnownAccountTypes lists the labels QIF consumers recognize.
func KnownAccountTypes() []AccountType {
	return []AccountType{
		AccountTypeBank,
		AccountTypeCreditCard,
		AccountTypeCash,
		AccountTypeOtherAsset,
		AccountTypeOtherLiability,
		AccountTypeInvestment,
	}
}

// Known reports whether t is one of KnownAccountTypes.
func (t AccountType) Known() bool {
	for _, k := range KnownAccountTypes() {
		if t == k {
			return true
		}
	}
	return false
}

// OrDefault returns t, or DefaultAccountType if t is empty.
func (t AccountType) OrDefault() AccountType {
	if t == "" {
		return DefaultAccountType
	}
	return t
}
