package domain

import "testing"

func TestClassify(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		name           string
		appName        string
		rawTitle       string
		expectedTitle  string
		expectedDomain string
	}{
		{
			name:           "chrome youtube suffix",
			appName:        "chrome",
			rawTitle:       "Funny Cat Video - YouTube",
			expectedTitle:  "Funny Cat Video",
			expectedDomain: "YouTube",
		},
		{
			name:           "browser suffix stripped",
			appName:        "chrome",
			rawTitle:       "Some Article - Google Chrome",
			expectedTitle:  "Some Article",
			expectedDomain: "Other",
		},
		{
			name:           "browser and site suffix stripped",
			appName:        "chrome",
			rawTitle:       "Funny Cat Video - YouTube - Google Chrome",
			expectedTitle:  "Funny Cat Video",
			expectedDomain: "YouTube",
		},
		{
			name:           "site name mid-title kept",
			appName:        "firefox",
			rawTitle:       "YouTube - Home - Mozilla Firefox",
			expectedTitle:  "YouTube - Home",
			expectedDomain: "YouTube",
		},
		{
			name:           "non-browser untouched",
			appName:        "notepad",
			rawTitle:       "untitled.txt",
			expectedTitle:  "untitled.txt",
			expectedDomain: "Other",
		},
		{
			name:           "non-browser never bucketed",
			appName:        "vlc",
			rawTitle:       "YouTube rip.mp4",
			expectedTitle:  "YouTube rip.mp4",
			expectedDomain: "Other",
		},
		{
			name:           "browser name case-insensitive",
			appName:        "Chrome",
			rawTitle:       "Gmail - Inbox - Google Chrome",
			expectedTitle:  "Gmail - Inbox",
			expectedDomain: "Mail",
		},
		{
			name:           "rule matching case-sensitive",
			appName:        "chrome",
			rawTitle:       "youtube downloader",
			expectedTitle:  "youtube downloader",
			expectedDomain: "Other",
		},
		{
			name:           "edge suffix",
			appName:        "msedge",
			rawTitle:       "Docs - Microsoft Edge",
			expectedTitle:  "Docs",
			expectedDomain: "Other",
		},
		{
			name:           "no suffix match leaves title",
			appName:        "opera",
			rawTitle:       "Reading List",
			expectedTitle:  "Reading List",
			expectedDomain: "Other",
		},
		{
			name:           "first rule wins",
			appName:        "chrome",
			rawTitle:       "GitHub issue about YouTube embeds",
			expectedTitle:  "GitHub issue about YouTube embeds",
			expectedDomain: "YouTube",
		},
		{
			name:           "empty title",
			appName:        "chrome",
			rawTitle:       "",
			expectedTitle:  "",
			expectedDomain: "Other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, domainInfo := c.Classify(tt.appName, tt.rawTitle)
			if title != tt.expectedTitle {
				t.Errorf("title = %q, expected %q", title, tt.expectedTitle)
			}
			if domainInfo != tt.expectedDomain {
				t.Errorf("domain = %q, expected %q", domainInfo, tt.expectedDomain)
			}
		})
	}
}

func TestClassifyCustomRules(t *testing.T) {
	c := NewClassifier(
		map[string][]string{"surf": {"- Surf"}},
		[]DomainRule{
			{Bucket: "Wiki", Substrings: []string{"Wikipedia"}},
			{Bucket: "Video", Substrings: []string{"Wikipedia", "Vimeo"}}, // shadowed by Wiki
		},
	)

	title, domainInfo := c.Classify("surf", "Go (programming language) - Wikipedia - Surf")
	if title != "Go (programming language)" {
		t.Errorf("title = %q", title)
	}
	if domainInfo != "Wiki" {
		t.Errorf("domain = %q, expected Wiki (first rule wins)", domainInfo)
	}
}

func TestClassifyIsPure(t *testing.T) {
	c := DefaultClassifier()
	for i := 0; i < 3; i++ {
		title, domainInfo := c.Classify("chrome", "Funny Cat Video - YouTube")
		if title != "Funny Cat Video" || domainInfo != "YouTube" {
			t.Fatalf("call %d: (%q, %q)", i, title, domainInfo)
		}
	}
}
