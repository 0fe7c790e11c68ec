package profile

import "encoding/json"

// VisionData is the processed view of the external document extraction
// result. The engine never calls the extraction service; it only
// consumes this already-merged blob.
type VisionData struct {
	Skills       []string
	Technologies []string
	Certificates []map[string]any
	Projects     []any
	Education    map[string]any
}

// Empty reports whether the extraction carried no usable data.
func (v VisionData) Empty() bool {
	return len(v.Skills) == 0 && len(v.Technologies) == 0 &&
		len(v.Certificates) == 0 && len(v.Projects) == 0 && len(v.Education) == 0
}

// parseVisionData accepts the blob either as a JSON string or as an
// already-decoded map. Anything unparseable yields an empty result.
func parseVisionData(blob any) VisionData {
	parsed := VisionData{Education: map[string]any{}}

	var data map[string]any
	switch v := blob.(type) {
	case nil:
		return parsed
	case string:
		if json.Unmarshal([]byte(v), &data) != nil {
			return parsed
		}
	case map[string]any:
		data = v
	default:
		return parsed
	}

	parsed.Skills = stringSlice(data["combined_skills"])
	parsed.Technologies = stringSlice(data["combined_technologies"])

	extractions, _ := data["individual_extractions"].([]any)
	for _, entry := range extractions {
		extraction, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if success, _ := extraction["success"].(bool); !success {
			continue
		}

		extracted, _ := extraction["extracted_data"].(map[string]any)
		docType, _ := extraction["document_type"].(string)

		switch docType {
		case "certificate":
			parsed.Certificates = append(parsed.Certificates, extracted)
		case "resume":
			if projects, ok := extracted["projects"].([]any); ok {
				parsed.Projects = append(parsed.Projects, projects...)
			}
			if education, ok := extracted["education"].(map[string]any); ok {
				parsed.Education = education
			}
		case "transcript":
			for key, value := range extracted {
				parsed.Education[key] = value
			}
		}
	}

	return parsed
}

func stringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
