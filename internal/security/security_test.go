package security

import (
	"testing"
	"time"
)

func TestLockoutAfterFiveFailures(t *testing.T) {
	tracker := NewLockoutTracker()

	for i := 0; i < 4; i++ {
		tracker.RecordFailure("joe@example.com")
	}
	if locked, count := tracker.IsLocked("joe@example.com"); locked || count != 4 {
		t.Fatalf("after 4 failures: locked=%v count=%d", locked, count)
	}

	tracker.RecordFailure("joe@example.com")
	if locked, count := tracker.IsLocked("joe@example.com"); !locked || count != 5 {
		t.Fatalf("after 5 failures: locked=%v count=%d", locked, count)
	}

	// a different identifier is unaffected
	if locked, _ := tracker.IsLocked("jane@example.com"); locked {
		t.Error("unrelated identifier locked")
	}
}

func TestLockoutWindowExpires(t *testing.T) {
	current := time.Now()
	tracker := NewLockoutTracker()
	tracker.now = func() time.Time { return current }

	for i := 0; i < 5; i++ {
		tracker.RecordFailure("joe@example.com")
	}
	if locked, _ := tracker.IsLocked("joe@example.com"); !locked {
		t.Fatal("expected lock")
	}

	current = current.Add(16 * time.Minute)
	if locked, count := tracker.IsLocked("joe@example.com"); locked || count != 0 {
		t.Errorf("after window: locked=%v count=%d", locked, count)
	}
}

func TestLockoutClear(t *testing.T) {
	tracker := NewLockoutTracker()
	for i := 0; i < 5; i++ {
		tracker.RecordFailure("joe@example.com")
	}
	tracker.Clear("joe@example.com")
	if locked, count := tracker.IsLocked("joe@example.com"); locked || count != 0 {
		t.Errorf("after clear: locked=%v count=%d", locked, count)
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("1.2.3.4") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
		limiter.Record("1.2.3.4")
	}
	if limiter.Allow("1.2.3.4") {
		t.Error("fourth attempt should be blocked")
	}
	if !limiter.Allow("5.6.7.8") {
		t.Error("other IP should be allowed")
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	current := time.Now()
	limiter := NewRateLimiter(2, 15*time.Minute)
	limiter.now = func() time.Time { return current }

	limiter.Record("1.2.3.4")
	limiter.Record("1.2.3.4")
	if limiter.Allow("1.2.3.4") {
		t.Fatal("expected block at limit")
	}

	current = current.Add(16 * time.Minute)
	if !limiter.Allow("1.2.3.4") {
		t.Error("expected allow after window passed")
	}
}

func TestValidEmailFormat(t *testing.T) {
	valid := []string{"user@example.com", "a.b+c@sub.domain.co.ke"}
	invalid := []string{"", "plainaddress", "user@", "@example.com", "user@host"}

	for _, e := range valid {
		if !ValidEmailFormat(e) {
			t.Errorf("expected valid: %s", e)
		}
	}
	for _, e := range invalid {
		if ValidEmailFormat(e) {
			t.Errorf("expected invalid: %s", e)
		}
	}
}

func TestIsDisposableEmail(t *testing.T) {
	if !IsDisposableEmail("bot@mailinator.com") {
		t.Error("mailinator should be disposable")
	}
	if !IsDisposableEmail("bot@YOPMAIL.com") {
		t.Error("domain check should be case-insensitive")
	}
	if IsDisposableEmail("person@gmail.com") {
		t.Error("gmail should not be disposable")
	}
	if IsDisposableEmail("no-at-sign") {
		t.Error("malformed email should not match")
	}
}

func TestValidPasswordLength(t *testing.T) {
	if ValidPasswordLength("12345") {
		t.Error("5 chars should fail")
	}
	if !ValidPasswordLength("123456") {
		t.Error("6 chars should pass")
	}
}
