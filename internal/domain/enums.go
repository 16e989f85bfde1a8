package domain

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHOD      Role = "hod"
	RoleEmployee Role = "employee"
	RoleAccount  Role = "account"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHOD, RoleEmployee, RoleAccount:
		return true
	}
	return false
}

// IsManager reports whether the role may approve credit requests.
func (r Role) IsManager() bool { return r == RoleAdmin || r == RoleHOD }

// CanProcessPayouts reports whether the role may work the redemption queue.
func (r Role) CanProcessPayouts() bool { return r == RoleAdmin || r == RoleAccount }

// EmployeeType is the employment classification of a user.
type EmployeeType string

const (
	EmployeeTypePermanentIndia  EmployeeType = "permanent_india"
	EmployeeTypePermanentUSA    EmployeeType = "permanent_usa"
	EmployeeTypeFreelancerIndia EmployeeType = "freelancer_india"
	EmployeeTypeFreelancerUSA   EmployeeType = "freelancer_usa"
)

func (t EmployeeType) String() string { return string(t) }

// Currency is a payout currency.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyINR Currency = "INR"
)

// DefaultCurrency is used when nothing else determines a user's currency.
const DefaultCurrency = CurrencyINR

func (c Currency) String() string { return string(c) }

func (c Currency) IsValid() bool {
	return c == CurrencyUSD || c == CurrencyINR
}

// CreditRequestType distinguishes freelancer payouts from policy incentives.
type CreditRequestType string

const (
	CreditRequestTypeFreelancer CreditRequestType = "freelancer"
	CreditRequestTypePolicy     CreditRequestType = "policy"
)

func (t CreditRequestType) String() string { return string(t) }

func (t CreditRequestType) IsValid() bool {
	return t == CreditRequestTypeFreelancer || t == CreditRequestTypePolicy
}

// CreditRequestStatus is the lifecycle state of a credit request.
type CreditRequestStatus string

const (
	CreditStatusPendingSignature        CreditRequestStatus = "pending_signature"
	CreditStatusPendingApproval         CreditRequestStatus = "pending_approval"
	CreditStatusPendingEmployeeApproval CreditRequestStatus = "pending_employee_approval"
	CreditStatusApproved                CreditRequestStatus = "approved"
	CreditStatusRejectedByUser          CreditRequestStatus = "rejected_by_user"
	CreditStatusRejectedByHOD           CreditRequestStatus = "rejected_by_hod"
	CreditStatusRejectedByEmployee      CreditRequestStatus = "rejected_by_employee"
)

func (s CreditRequestStatus) String() string { return string(s) }

func (s CreditRequestStatus) IsValid() bool {
	switch s {
	case CreditStatusPendingSignature, CreditStatusPendingApproval, CreditStatusPendingEmployeeApproval,
		CreditStatusApproved, CreditStatusRejectedByUser, CreditStatusRejectedByHOD, CreditStatusRejectedByEmployee:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s CreditRequestStatus) IsTerminal() bool {
	switch s {
	case CreditStatusApproved, CreditStatusRejectedByUser, CreditStatusRejectedByHOD, CreditStatusRejectedByEmployee:
		return true
	}
	return false
}

// RedemptionStatus is the lifecycle state of a redemption request.
type RedemptionStatus string

const (
	RedemptionStatusPending    RedemptionStatus = "pending"
	RedemptionStatusProcessing RedemptionStatus = "processing"
	RedemptionStatusCompleted  RedemptionStatus = "completed"
	RedemptionStatusRejected   RedemptionStatus = "rejected"
)

func (s RedemptionStatus) String() string { return string(s) }

func (s RedemptionStatus) IsValid() bool {
	switch s {
	case RedemptionStatusPending, RedemptionStatusProcessing, RedemptionStatusCompleted, RedemptionStatusRejected:
		return true
	}
	return false
}

// IsOpen reports whether the redemption can still be processed or rejected.
func (s RedemptionStatus) IsOpen() bool {
	return s == RedemptionStatusPending || s == RedemptionStatusProcessing
}

// TransactionType is the direction of a wallet transaction.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

func (t TransactionType) String() string { return string(t) }

func (t TransactionType) IsValid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

// TimelineStep names a transition recorded in a timeline log.
type TimelineStep string

const (
	StepRequestCreated       TimelineStep = "REQUEST_CREATED"
	StepEmployeeSignature    TimelineStep = "EMPLOYEE_SIGNATURE"
	StepEmployeeRejected     TimelineStep = "EMPLOYEE_REJECTED"
	StepHODApproved          TimelineStep = "HOD_APPROVED"
	StepHODRejected          TimelineStep = "HOD_REJECTED"
	StepEmployeeApproved     TimelineStep = "EMPLOYEE_APPROVED"
	StepWalletCredited       TimelineStep = "WALLET_CREDITED"
	StepRedemptionRequested  TimelineStep = "REDEMPTION_REQUESTED"
	StepWalletDebited        TimelineStep = "WALLET_DEBITED"
	StepRedemptionProcessing TimelineStep = "REDEMPTION_PROCESSING"
	StepRedemptionProcessed  TimelineStep = "REDEMPTION_PROCESSED"
	StepRedemptionRejected   TimelineStep = "REDEMPTION_REJECTED"
	StepWalletReversed       TimelineStep = "WALLET_REVERSED"
)

func (s TimelineStep) String() string { return string(s) }

// EntityType identifies the kind of record an audit event refers to.
type EntityType string

const (
	EntityTypeCreditRequest     EntityType = "credit_request"
	EntityTypeRedemption        EntityType = "redemption_request"
	EntityTypeWallet            EntityType = "wallet"
	EntityTypeWalletTransaction EntityType = "wallet_transaction"
	EntityTypeUser              EntityType = "user"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeCreditRequest, EntityTypeRedemption, EntityTypeWallet, EntityTypeWalletTransaction, EntityTypeUser:
		return true
	}
	return false
}

// AuditAction is the verb recorded in an audit event.
type AuditAction string

const (
	AuditActionCreate            AuditAction = "CREATE"
	AuditActionSign              AuditAction = "SIGN"
	AuditActionApprove           AuditAction = "APPROVE"
	AuditActionReject            AuditAction = "REJECT"
	AuditActionCredit            AuditAction = "CREDIT"
	AuditActionRedeem            AuditAction = "REDEEM"
	AuditActionProcess           AuditAction = "PROCESS"
	AuditActionReconcileCurrency AuditAction = "RECONCILE_CURRENCY"
)

func (a AuditAction) String() string { return string(a) }

// EmailKind selects the workflow email template.
type EmailKind string

const (
	EmailCreditRequestCreated  EmailKind = "credit_request_created"
	EmailCreditRequestApproved EmailKind = "credit_request_approved"
	EmailCreditRequestRejected EmailKind = "credit_request_rejected"
	EmailRedemptionRequested   EmailKind = "redemption_requested"
	EmailRedemptionCompleted   EmailKind = "redemption_completed"
	EmailRedemptionRejected    EmailKind = "redemption_rejected"
)

func (k EmailKind) String() string { return string(k) }
