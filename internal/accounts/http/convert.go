package http

import (
	"github.com/flowmerce/accounts/internal/accounts/domain"
	"github.com/flowmerce/accounts/pkg/accountsdk"
)

func toUserResponse(a domain.Account) accountsdk.UserResponse {
	return accountsdk.UserResponse{
		UserID:       a.ID,
		Email:        a.Email,
		FullName:     a.FullName,
		Phone:        a.Phone,
		Role:         a.Role.String(),
		IsMFAEnabled: a.MFAEnabled,
		CreatedAt:    a.CreatedAt,
	}
}

func toMerchantResponse(m domain.MerchantProfile) accountsdk.MerchantResponse {
	return accountsdk.MerchantResponse{
		MerchantID:   m.ID,
		UserID:       m.AccountID,
		BusinessName: m.BusinessName,
		IsVerified:   m.Verified,
		Email:        m.Email,
		FullName:     m.FullName,
	}
}
