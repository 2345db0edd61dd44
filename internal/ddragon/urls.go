package ddragon

import "fmt"

const cdnBase = "https://ddragon.leagueoflegends.com/cdn"

// SplashURL returns the full splash art for a skin
func SplashURL(championID string, skinNum int) string {
	return fmt.Sprintf("%s/img/champion/splash/%s_%d.jpg", cdnBase, championID, skinNum)
}

// TileURL returns the square tile crop for a skin
func TileURL(championID string, skinNum int) string {
	return fmt.Sprintf("%s/img/champion/tiles/%s_%d.jpg", cdnBase, championID, skinNum)
}

// LoadingURL returns the loading screen portrait for a skin
func LoadingURL(championID string, skinNum int) string {
	return fmt.Sprintf("%s/img/champion/loading/%s_%d.jpg", cdnBase, championID, skinNum)
}

// ChampionIconURL returns the champion square icon for a version
func ChampionIconURL(version, championID string) string {
	return fmt.Sprintf("%s/%s/img/champion/%s.png", cdnBase, version, championID)
}

// ProfileIconURL returns a summoner profile icon for a version
func ProfileIconURL(version string, iconID int) string {
	return fmt.Sprintf("%s/%s/img/profileicon/%d.png", cdnBase, version, iconID)
}
