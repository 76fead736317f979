package persist

import (
	"encoding/json"

	"storefront/internal/domain/model"
)

// スロットのペイロードをエンコードする。常に現行versionの封筒形式で書く。
func encodeLines(lines []model.CartLine) ([]byte, error) {
	env := model.SnapshotEnvelope{
		Version: model.SnapshotSchemaVersion,
		Lines:   lines,
	}
	return json.Marshal(env)
}

// ペイロードをデコードする。壊れたJSON・未知のversionは nil（＝空ストア）。
// 旧形式（封筒なしの素の配列）はversion 1として受け入れる。
func decodeLines(b []byte) []model.CartLine {
	if len(b) == 0 {
		return nil
	}

	var env model.SnapshotEnvelope
	if err := json.Unmarshal(b, &env); err == nil && env.Version != 0 {
		if env.Version != model.SnapshotSchemaVersion {
			return nil
		}
		return env.Lines
	}

	// 旧形式
	var lines []model.CartLine
	if err := json.Unmarshal(b, &lines); err != nil {
		return nil
	}
	return lines
}
