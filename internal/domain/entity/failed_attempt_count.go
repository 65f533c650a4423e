package entity

// LockoutThreshold is the number of failed attempts after which an identity
// is considered locked.
const LockoutThreshold = 5

// FailedAttemptCount counts consecutive failed password attempts.
type FailedAttemptCount struct {
	value int
}

func InitialFailedAttemptCount() FailedAttemptCount {
	return FailedAttemptCount{}
}

func NewFailedAttemptCount(value int) (FailedAttemptCount, error) {
	if value < 0 {
		return FailedAttemptCount{}, invalid("failedAttempts", "failed attempt count cannot be negative")
	}
	return FailedAttemptCount{value: value}, nil
}

func (c FailedAttemptCount) Value() int { return c.value }

func (c FailedAttemptCount) Increment() FailedAttemptCount {
	return FailedAttemptCount{value: c.value + 1}
}

func (c FailedAttemptCount) Reset() FailedAttemptCount {
	return FailedAttemptCount{}
}

func (c FailedAttemptCount) IsLocked() bool {
	return c.value >= LockoutThreshold
}
