package sjapi

import "github.com/simon-weber/Unofficial-Google-Music-API/internal/shared"

// ReconcileMutations checks a batch mutation response. A body with no
// mutate_response key is unconditional success with no ids. Otherwise any
// entry whose response_code is not "OK" fails the whole batch; partial
// success is not modeled. On success the ids of the entries that carry one
// are returned in response order.
func ReconcileMutations(raw []byte) ([]string, error) {
	m, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	mutations, ok := m["mutate_response"].([]any)
	if !ok {
		return nil, nil
	}

	var ids []string
	for i, entry := range mutations {
		mutation, _ := entry.(map[string]any)
		code, _ := mutation["response_code"].(string)
		if code != "OK" {
			return nil, &shared.MutationFailedError{Index: i, Code: code}
		}
		if id, ok := mutation["id"].(string); ok {
			ids = append(ids, id)
		}
	}

	return ids, nil
}
