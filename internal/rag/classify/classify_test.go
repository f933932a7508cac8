package classify

import "testing"

func TestIsCommunityQueryKeyword(t *testing.T) {
	ok, reason := IsCommunityQuery("Where is the nearest Hospital in Adyar?")
	if !ok {
		t.Fatal("Expected Hospital query to pass the topic gate")
	}
	if reason != ReasonCommunityService {
		t.Errorf("Expected reason %v got %v", ReasonCommunityService, reason)
	}
}

func TestIsCommunityQueryPattern(t *testing.T) {
	ok, reason := IsCommunityQuery("what are the timings today")
	if !ok {
		t.Fatal("Expected timings query to pass the topic gate")
	}
	if reason != ReasonServiceInquiry {
		t.Errorf("Expected reason %v got %v", ReasonServiceInquiry, reason)
	}
}

func TestIsCommunityQueryOffTopic(t *testing.T) {
	ok, reason := IsCommunityQuery("Tell me a joke about penguins")
	if ok {
		t.Fatal("Expected penguin joke to fail the topic gate")
	}
	if reason != ReasonOffTopic {
		t.Errorf("Expected reason %v got %v", ReasonOffTopic, reason)
	}
}

func TestIsCommunityQueryCaseInsensitive(t *testing.T) {
	ok, _ := IsCommunityQuery("NEED A PLUMBER")
	if !ok {
		t.Error("Expected uppercase keyword to match")
	}
}
