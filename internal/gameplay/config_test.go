package gameplay

import (
	"errors"
	"testing"
)

func TestParseTemplate(t *testing.T) {
	for _, s := range []string{"matching", "sorting", "catch", "story"} {
		if _, ok := ParseTemplate(s); !ok {
			t.Errorf("ParseTemplate(%q) not recognized", s)
		}
	}
	if _, ok := ParseTemplate("quiz"); ok {
		t.Error("ParseTemplate accepted an unknown template")
	}
}

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name     string
		template Template
		raw      string
		wantErr  bool
	}{
		{
			name:     "matching ok",
			template: TemplateMatching,
			raw:      `{"pairs":[{"id":"a","content":"apple"},{"id":"b","content":"banana"}],"theme":"fruit"}`,
		},
		{
			name:     "matching empty pairs",
			template: TemplateMatching,
			raw:      `{"pairs":[]}`,
			wantErr:  true,
		},
		{
			name:     "matching duplicate pair id",
			template: TemplateMatching,
			raw:      `{"pairs":[{"id":"a","content":"x"},{"id":"a","content":"y"}]}`,
			wantErr:  true,
		},
		{
			name:     "sorting numeric values",
			template: TemplateSorting,
			raw:      `{"items":[{"id":"a","value":3,"display":"3"},{"id":"b","value":1,"display":"1"}],"sortType":"number"}`,
		},
		{
			name:     "sorting string values",
			template: TemplateSorting,
			raw:      `{"items":[{"id":"a","value":"cat","display":"cat"},{"id":"b","value":"ant","display":"ant"}],"sortType":"alphabet"}`,
		},
		{
			name:     "sorting single item",
			template: TemplateSorting,
			raw:      `{"items":[{"id":"a","value":1,"display":"1"}]}`,
			wantErr:  true,
		},
		{
			name:     "sorting unknown sort type",
			template: TemplateSorting,
			raw:      `{"items":[{"id":"a","value":1,"display":"1"},{"id":"b","value":2,"display":"2"}],"sortType":"weight"}`,
			wantErr:  true,
		},
		{
			name:     "catch ok",
			template: TemplateCatch,
			raw:      `{"objectEmoji":"⭐","catcherEmoji":"🧺","fallPattern":"zigzag","fallSpeed":"fast","spawnRate":"high","targetScore":50}`,
		},
		{
			name:     "catch bad fall pattern",
			template: TemplateCatch,
			raw:      `{"objectEmoji":"⭐","catcherEmoji":"🧺","fallPattern":"tumbling","fallSpeed":"fast","spawnRate":"high"}`,
			wantErr:  true,
		},
		{
			name:     "catch negative target",
			template: TemplateCatch,
			raw:      `{"objectEmoji":"⭐","catcherEmoji":"🧺","fallPattern":"straight","fallSpeed":"slow","spawnRate":"low","targetScore":-1}`,
			wantErr:  true,
		},
		{
			name:     "story ok",
			template: TemplateStory,
			raw:      `{"scenes":[{"id":"s1","text":"Once upon a time"}]}`,
		},
		{
			name:     "story empty scene text",
			template: TemplateStory,
			raw:      `{"scenes":[{"id":"s1","text":""}]}`,
			wantErr:  true,
		},
		{
			name:     "cross-template field leakage",
			template: TemplateMatching,
			raw:      `{"pairs":[{"id":"a","content":"x"}],"fallSpeed":"fast"}`,
			wantErr:  true,
		},
		{
			name:     "unknown template",
			template: Template("quiz"),
			raw:      `{}`,
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParams(tt.template, []byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateParams() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("error type = %T, want *ValidationError", err)
				}
			}
		})
	}
}

func TestSortValueRoundTrip(t *testing.T) {
	var num SortValue
	if err := num.UnmarshalJSON([]byte(`"12"`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if !num.IsNum || num.Number != 12 {
		t.Errorf("numeric string not parsed as number: %+v", num)
	}

	var v SortValue
	if err := v.UnmarshalJSON([]byte(`"cat"`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if v.Raw != "cat" {
		t.Errorf("Raw = %q, want cat", v.Raw)
	}
	got, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(got) != `"cat"` {
		t.Errorf("MarshalJSON = %s, want %q", got, "cat")
	}
}
