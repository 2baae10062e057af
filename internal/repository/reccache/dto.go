package reccache

import "github.com/kailas-cloud/stylematch/internal/domain/search/result"

type resultDTO struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image string  `json:"image"`
	Score float64 `json:"score"`
}

func fromDomain(r *result.Result) resultDTO {
	return resultDTO{ID: r.ID(), Name: r.Name(), Image: r.Image(), Score: r.Score()}
}

func (d resultDTO) toDomain() result.Result {
	return result.New(d.ID, d.Name, d.Image, d.Score)
}
