package dashboard

import (
	"github.com/2beens/fitdash/internal/userdata"
)

const (
	MessageNoScore  = "Aucune donnée pour aujourd'hui"
	MessageStart    = "Vous avez pris un excellent départ ! Poursuivez vos efforts pour atteindre vos objectifs."
	MessageHalfway  = "A mi-chemin ! Vos progrès sont louables, continuez à faire du bon travail."
	MessageOnTrack  = "Vous vous en sortez très bien ! Restez concentré et continuez à vous efforcer d'atteindre votre objectif."
	MessageGoalDone = "Félicitations ! Vous avez atteint votre objectif. Votre travail acharné a porté ses fruits, continuez sur votre lancée."
)

// Greeting is the dashboard heading for the user.
func Greeting(user *userdata.User) string {
	if user == nil {
		return "Bonjour"
	}
	return "Bonjour " + user.Infos.FirstName + " " + user.Infos.LastName
}

// Message picks the encouragement line for the today score, compared on
// the 0..100 scale.
func Message(user *userdata.User) string {
	if user == nil || !user.HasScore {
		return MessageNoScore
	}
	switch score := user.ScorePercent(); {
	case score <= 25:
		return MessageStart
	case score <= 50:
		return MessageHalfway
	case score <= 75:
		return MessageOnTrack
	case score <= 100:
		return MessageGoalDone
	default:
		return MessageNoScore
	}
}
