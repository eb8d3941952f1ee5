package skill

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/skillbar/internal/platform/errors"
	"github.com/louisbranch/skillbar/internal/services/skillbar/domain/build"
)

// jsonRecord mirrors the compact keys of the community skills.json dump.
type jsonRecord struct {
	Name        string    `json:"n"`
	Description string    `json:"d"`
	Profession  int       `json:"p"`
	Attribute   int       `json:"a"`
	Type        int       `json:"t"`
	Elite       flexBool  `json:"e"`
	Data        *jsonData `json:"z"`
}

type jsonData struct {
	Upkeep     float64 `json:"d"`
	Adrenaline float64 `json:"a"`
	Energy     float64 `json:"e"`
	Sacrifice  float64 `json:"s"`
	Activation float64 `json:"c"`
	Recharge   float64 `json:"r"`
	Overcast   float64 `json:"x"`
	Special    uint32  `json:"sp"`
	WeaponReq  int     `json:"q"`
	Combo      int     `json:"co"`
}

// flexBool accepts true/false as well as 0/1.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.TrimSpace(string(data)) {
	case "true", "1":
		*b = true
	case "false", "0", "null", "":
		*b = false
	default:
		return fmt.Errorf("invalid boolean %s", data)
	}
	return nil
}

// DecodeJSON reads skill records from a skills.json document. The document is
// either an array indexed by skill id (null entries are skipped) or an object
// keyed by decimal skill id. Records are returned sorted by id.
func DecodeJSON(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read skills json: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, invalidData("document is empty")
	}

	var records []Record
	switch trimmed[0] {
	case '[':
		var raw []*jsonRecord
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, invalidData(err.Error())
		}
		for id, entry := range raw {
			if entry == nil {
				continue
			}
			records = append(records, entry.record(id))
		}
	case '{':
		var raw map[string]*jsonRecord
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, invalidData(err.Error())
		}
		for key, entry := range raw {
			if entry == nil {
				continue
			}
			id, err := strconv.Atoi(key)
			if err != nil || id < 0 {
				return nil, invalidData(fmt.Sprintf("skill id %q is not a non-negative integer", key))
			}
			records = append(records, entry.record(id))
		}
	default:
		return nil, invalidData("expected an array or an object")
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (j *jsonRecord) record(id int) Record {
	r := Record{
		ID:          id,
		Name:        j.Name,
		Description: j.Description,
		Profession:  build.Profession(j.Profession),
		Attribute:   build.Attribute(j.Attribute),
		Type:        Type(j.Type),
		Elite:       bool(j.Elite),
	}
	if j.Data != nil {
		r.Costs = Costs{
			Upkeep:     roundInt(j.Data.Upkeep),
			Adrenaline: roundInt(j.Data.Adrenaline),
			Energy:     roundInt(j.Data.Energy),
			Sacrifice:  roundInt(j.Data.Sacrifice),
			Activation: j.Data.Activation,
			Recharge:   roundInt(j.Data.Recharge),
			Overcast:   roundInt(j.Data.Overcast),
		}
		r.Special = j.Data.Special
		r.WeaponReq = WeaponReq(j.Data.WeaponReq)
		r.Combo = Combo(j.Data.Combo)
	}
	return r
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func invalidData(reason string) error {
	return apperrors.WithMetadata(apperrors.CodeSkillDataInvalid, "invalid skills json: "+reason, map[string]string{"Reason": reason})
}
