package stepstone

import "testing"

func TestBuildSearchURL_KeywordOnly(t *testing.T) {
	got := BuildSearchURL(DefaultBaseURL, SearchQuery{Keywords: "AI Engineer", Page: 1})
	want := "https://www.stepstone.de/jobs/AI+Engineer"
	if got != want {
		t.Errorf("BuildSearchURL = %q, want %q", got, want)
	}
}

func TestBuildSearchURL_KeywordAndLocation(t *testing.T) {
	got := BuildSearchURL(DefaultBaseURL, SearchQuery{Keywords: "AI Engineer", Location: "Berlin", Page: 1})
	want := "https://www.stepstone.de/jobs/AI+Engineer/in-Berlin"
	if got != want {
		t.Errorf("BuildSearchURL = %q, want %q", got, want)
	}
}

func TestBuildSearchURL_AllParams(t *testing.T) {
	q := SearchQuery{
		Keywords:   "KI AI GenAI",
		Location:   "Nordrhein-Westfalen",
		Radius:     30,
		Page:       2,
		DateFilter: 7,
	}
	got := BuildSearchURL(DefaultBaseURL, q)
	want := "https://www.stepstone.de/jobs/KI+AI+GenAI/in-Nordrhein-Westfalen?age=7&page=2&radius=30"
	if got != want {
		t.Errorf("BuildSearchURL = %q, want %q", got, want)
	}
}

func TestBuildSearchURL_PageOneOmitted(t *testing.T) {
	q := SearchQuery{Keywords: "AI", Page: 1, Radius: 30}
	got := BuildSearchURL(DefaultBaseURL, q)
	want := "https://www.stepstone.de/jobs/AI?radius=30"
	if got != want {
		t.Errorf("BuildSearchURL = %q, want %q", got, want)
	}
}

func TestBuildSearchURL_AbsentOptionalsOmitted(t *testing.T) {
	got := BuildSearchURL(DefaultBaseURL, SearchQuery{Keywords: "AI"})
	want := "https://www.stepstone.de/jobs/AI"
	if got != want {
		t.Errorf("BuildSearchURL = %q, want %q", got, want)
	}
}

func TestBuildSearchURL_Deterministic(t *testing.T) {
	q := SearchQuery{Keywords: "Prompt Engineer", Location: "Hamburg", Radius: 50, Page: 3, DateFilter: 14}
	first := BuildSearchURL(DefaultBaseURL, q)
	for i := 0; i < 10; i++ {
		if got := BuildSearchURL(DefaultBaseURL, q); got != first {
			t.Fatalf("BuildSearchURL not deterministic: %q vs %q", got, first)
		}
	}
}

func TestBuildSearchURL_TrailingSlashBase(t *testing.T) {
	got := BuildSearchURL("https://www.stepstone.de/", SearchQuery{Keywords: "AI"})
	want := "https://www.stepstone.de/jobs/AI"
	if got != want {
		t.Errorf("BuildSearchURL = %q, want %q", got, want)
	}
}

func TestValidDateFilter(t *testing.T) {
	for _, d := range []int{0, 1, 3, 7, 14, 30} {
		if !ValidDateFilter(d) {
			t.Errorf("ValidDateFilter(%d) = false, want true", d)
		}
	}
	for _, d := range []int{2, 5, 60, -1} {
		if ValidDateFilter(d) {
			t.Errorf("ValidDateFilter(%d) = true, want false", d)
		}
	}
}
