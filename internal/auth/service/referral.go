package service

import "context"

const referralKey = "referallCode"

// ReferralChecker decides whether a referral code offered at signup is honoured.
type ReferralChecker interface {
	Check(ctx context.Context, code string) error
}

// AcceptAllReferrals accepts every well-formed code; there is no referral registry yet.
type AcceptAllReferrals struct{}

func (AcceptAllReferrals) Check(context.Context, string) error {
	return nil
}
