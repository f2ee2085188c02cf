package enrich

import (
	"encoding/json"
	"fmt"
	"strings"

	"ProfileScanner/internal/domain"
	"ProfileScanner/internal/infrastructure/llm"
)

// Task names.
const (
	TaskProfile   = "profile"
	TaskRegion    = "region"
	TaskEmployers = "employers"
)

// Regions accepted by the region task.
var Regions = []string{"North America", "Europe", "Asia", "Africa", "LATAM", "Australia"}

// Settings tune the completion calls of a task.
type Settings struct {
	Model       string
	MaxTokens   int
	Temperature *float64
}

// Task is a selection query, an instruction template and a strict parser
// that turns the reply into a patch.
type Task struct {
	Name  string
	Query domain.Query
	// Input extracts the text sent for a record; blank input skips it.
	Input   func(domain.ProcessedRecord) string
	Request func(input string) domain.CompletionRequest
	Parse   func(reply string) (domain.Patch, error)
}

// NewTask returns the named task.
func NewTask(name string, settings Settings) (Task, error) {
	switch name {
	case TaskProfile:
		return ProfileTask(settings), nil
	case TaskRegion:
		return RegionTask(settings), nil
	case TaskEmployers:
		return EmployersTask(settings), nil
	}
	return Task{}, fmt.Errorf("unknown enrichment task %q", name)
}

// ProfileTask extracts education, employer, location and other experiences
// from unprocessed descriptions and marks the record processed.
func ProfileTask(settings Settings) Task {
	return Task{
		Name:  TaskProfile,
		Query: domain.Query{Equals: map[string]any{domain.ColumnProcessed: false}},
		Input: func(r domain.ProcessedRecord) string { return r.OGDescription },
		Request: func(input string) domain.CompletionRequest {
			return settings.request("", fmt.Sprintf(`Given the LinkedIn information, extract & structure data into the categories:
Education, Former Employers, Location, previous professional experiences or jobs & important facts. If you don't find data, return an empty string. Format location always: "City, Country". Only provide the university name (no sub-degrees or sub schools).

Profile information:
%s

Format your response as a JSON object with the following structure:
{
  "education": "",
  "employer": "",
  "location": "",
  "otherExperiences": ""
}`, input))
		},
		Parse: func(reply string) (domain.Patch, error) {
			fields, err := decodeObject(reply, "education", "employer", "location", "otherExperiences")
			if err != nil {
				return nil, err
			}
			return domain.Patch{
				domain.ColumnEducation:        fields["education"],
				domain.ColumnEmployer:         fields["employer"],
				domain.ColumnLocation:         fields["location"],
				domain.ColumnOtherExperiences: fields["otherExperiences"],
				domain.ColumnProcessed:        true,
			}, nil
		},
	}
}

// RegionTask derives region and country from a known location.
func RegionTask(settings Settings) Task {
	return Task{
		Name: TaskRegion,
		Query: domain.Query{
			Null:    []string{domain.ColumnRegion, domain.ColumnCountry},
			Present: []string{domain.ColumnLocation},
		},
		Input: func(r domain.ProcessedRecord) string { return r.Location },
		Request: func(input string) domain.CompletionRequest {
			return settings.request(
				"Determine the region and country of a given location. "+
					"The possible regions are: "+strings.Join(Regions, ", ")+". "+
					`Return a JSON object {"region": "", "country": ""}.`,
				fmt.Sprintf("Determine the region and country for this location: %q", input),
			)
		},
		Parse: func(reply string) (domain.Patch, error) {
			fields, err := decodeObject(reply, "region", "country")
			if err != nil {
				return nil, err
			}
			region, ok := canonicalRegion(fields["region"])
			if !ok {
				return nil, fmt.Errorf("%w: unknown region %q", ErrMalformedResponse, fields["region"])
			}
			if fields["country"] == "" {
				return nil, fmt.Errorf("%w: empty country", ErrMalformedResponse)
			}
			return domain.Patch{
				domain.ColumnRegion:  region,
				domain.ColumnCountry: fields["country"],
			}, nil
		},
	}
}

// EmployersTask extracts a short comma-separated list of previous employers.
func EmployersTask(settings Settings) Task {
	return Task{
		Name:  TaskEmployers,
		Query: domain.Query{Null: []string{domain.ColumnEmployer}},
		Input: func(r domain.ProcessedRecord) string { return r.OGDescription },
		Request: func(input string) domain.CompletionRequest {
			return settings.request(
				"You extract previous employers and jobs from LinkedIn profile descriptions. "+
					"Keep employer names as short as possible. Do not include 'Stealth Mode' jobs, "+
					"academic institutions or job titles. Only include real company names. "+
					`Return a JSON object {"employers": "<comma-separated list or empty string>"}.`,
				fmt.Sprintf("Extract previous employers from this LinkedIn profile description: %q", input),
			)
		},
		Parse: func(reply string) (domain.Patch, error) {
			fields, err := decodeObject(reply, "employers")
			if err != nil {
				return nil, err
			}
			return domain.Patch{domain.ColumnEmployer: fields["employers"]}, nil
		},
	}
}

func (s Settings) request(system, prompt string) domain.CompletionRequest {
	return domain.CompletionRequest{
		System:      system,
		Prompt:      prompt,
		Model:       s.Model,
		MaxTokens:   s.MaxTokens,
		Temperature: s.Temperature,
		JSONObject:  true,
	}
}

// decodeObject requires every key to be present with a string value.
func decodeObject(reply string, keys ...string) (map[string]string, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(llm.StripCodeFences(reply)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	out := make(map[string]string, len(keys))
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing key %q", ErrMalformedResponse, key)
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: key %q is not a string", ErrMalformedResponse, key)
		}
		out[key] = strings.TrimSpace(s)
	}
	return out, nil
}

func canonicalRegion(value string) (string, bool) {
	for _, region := range Regions {
		if strings.EqualFold(region, strings.TrimSpace(value)) {
			return region, true
		}
	}
	return "", false
}
