package category

import (
	"reflect"
	"testing"

	"github.com/aranyoray/curiousmails/internal/listing"
)

func TestBoothPrefix(t *testing.T) {
	tests := []struct {
		booth string
		want  string
	}{
		{"EBED001T", "EBED"},
		{"ENBM052T", "ENBM"},
		{"CS101T", "CS"},
		{"PHYS", "PHYS"},
		{"123", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.booth, func(t *testing.T) {
			if got := BoothPrefix(tt.booth); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestPrimary(t *testing.T) {
	tests := []struct {
		name    string
		project listing.Project
		want    string
	}{
		{
			name:    "booth prefix wins",
			project: listing.Project{Booth: "ENBM052T", Category: "Chemistry"},
			want:    "Biomedical Engineering",
		},
		{
			name:    "legacy booth code",
			project: listing.Project{Booth: "CSE001"},
			want:    "Software Systems",
		},
		{
			name:    "category alias",
			project: listing.Project{Category: "Physics and Astronomy"},
			want:    "Physics",
		},
		{
			name:    "unknown booth falls back to category",
			project: listing.Project{Booth: "ZZZZ001", Category: "Chemistry"},
			want:    "Chemistry",
		},
		{
			name:    "nothing known",
			project: listing.Project{},
			want:    "Other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Primary(&tt.project); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCrossListings_StrongSingleMatch(t *testing.T) {
	p := listing.Project{
		Booth:    "MATH001",
		Title:    "A Theorem",
		Abstract: "We built a robot arm to draw proofs.",
	}

	cross := CrossListings(&p, Primary(&p))
	want := []string{"Robotics & Intelligent Machines"}
	if !reflect.DeepEqual(cross, want) {
		t.Errorf("Expected %v, got %v", want, cross)
	}
}

func TestCrossListings_TwoMatches(t *testing.T) {
	p := listing.Project{
		Booth:    "ENMT001",
		Title:    "Pipe Inspection",
		Abstract: "We cultured bacteria and tested an antibiotic.",
	}

	cross := CrossListings(&p, Primary(&p))
	want := []string{"Microbiology"}
	if !reflect.DeepEqual(cross, want) {
		t.Errorf("Expected %v, got %v", want, cross)
	}
}

func TestCrossListings_WeakSingleMatchExcluded(t *testing.T) {
	p := listing.Project{
		Booth:    "PHYS001",
		Abstract: "An enzyme was observed.",
	}

	cross := CrossListings(&p, Primary(&p))
	if len(cross) != 0 {
		t.Errorf("A single ordinary keyword must not cross-list, got %v", cross)
	}
}

func TestCrossListings_SkipsPrimary(t *testing.T) {
	p := listing.Project{
		Booth:    "MCRO001",
		Abstract: "We cultured bacteria and tested an antibiotic.",
	}

	cross := CrossListings(&p, Primary(&p))
	for _, cat := range cross {
		if cat == "Microbiology" {
			t.Errorf("Primary category must not appear as a cross-listing: %v", cross)
		}
	}
}

func TestAssign(t *testing.T) {
	p := listing.Project{
		Booth:    "ENBM052T",
		Title:    "Machine Learning Based Early Detection of Diabetic Retinopathy",
		Abstract: "deep learning neural network diagnosis of patients with diabetes",
	}

	Assign(&p)

	if p.PrimaryCategory != "Biomedical Engineering" {
		t.Errorf("Expected primary Biomedical Engineering, got %q", p.PrimaryCategory)
	}
	want := []string{
		"Biomedical Engineering",
		"Biomedical & Health Sciences",
		"Computational Science",
	}
	if !reflect.DeepEqual(p.Categories, want) {
		t.Errorf("Expected categories %v, got %v", want, p.Categories)
	}
}
