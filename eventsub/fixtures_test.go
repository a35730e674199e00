package eventsub_test

import "github.com/arvarik/twitch-go/eventsub"

// eventFixtures holds one event object per registered key.
var eventFixtures = map[eventsub.Key]string{
	{Type: eventsub.EventTypeChannelFollow, Version: "2"}: `{
		"user_id": "1234",
		"user_login": "cool_user",
		"user_name": "Cool_User",
		"broadcaster_user_id": "1337",
		"broadcaster_user_login": "cooler_user",
		"broadcaster_user_name": "Cooler_User",
		"followed_at": "2020-07-15T18:16:11.17106713Z"
	}`,
	{Type: eventsub.EventTypeChannelUpdate, Version: "2"}: `{
		"broadcaster_user_id": "1337",
		"broadcaster_user_login": "cool_user",
		"broadcaster_user_name": "Cool_User",
		"title": "Best Stream Ever",
		"language": "en",
		"category_id": "12453",
		"category_name": "Grand Theft Auto",
		"content_classification_labels": ["MatureGame"]
	}`,
	{Type: eventsub.EventTypeChannelSubscribe, Version: "1"}: `{
		"user_id": "1234",
		"user_login": "cool_user",
		"user_name": "Cool_User",
		"broadcaster_user_id": "1337",
		"broadcaster_user_login": "cooler_user",
		"broadcaster_user_name": "Cooler_User",
		"tier": "1000",
		"is_gift": false
	}`,
	{Type: eventsub.EventTypeStreamOnline, Version: "1"}: `{
		"id": "9001",
		"broadcaster_user_id": "1337",
		"broadcaster_user_login": "cool_user",
		"broadcaster_user_name": "Cool_User",
		"type": "live",
		"started_at": "2020-10-11T10:11:12.123Z"
	}`,
	{Type: eventsub.EventTypeStreamOffline, Version: "1"}: `{
		"broadcaster_user_id": "1337",
		"broadcaster_user_login": "cool_user",
		"broadcaster_user_name": "Cool_User"
	}`,
	{Type: eventsub.EventTypeChannelPollBegin, Version: "beta"}: `{
		"id": "1243456",
		"broadcaster_user_id": "1337",
		"broadcaster_user_login": "cool_user",
		"broadcaster_user_name": "Cool_User",
		"title": "Aren’t shoes just really hard socks?",
		"choices": [
			{"id": "123", "title": "Yeah!"},
			{"id": "124", "title": "No!"}
		],
		"bits_voting": {"is_enabled": true, "amount_per_vote": 10},
		"channel_points_voting": {"is_enabled": true, "amount_per_vote": 10},
		"started_at": "2020-07-15T17:16:03.17106713Z",
		"ends_at": "2020-07-15T17:16:08.17106713Z"
	}`,
	{Type: eventsub.EventTypeChannelPollProgress, Version: "beta"}: `{
		"id": "1243456",
		"broadcaster_user_id": "1337",
		"broadcaster_user_login": "cool_user",
		"broadcaster_user_name": "Cool_User",
		"title": "Aren’t shoes just really hard socks?",
		"choices": [
			{"id": "123", "title": "Yeah!", "bits_votes": 5, "channel_points_votes": 7, "votes": 12},
			{"id": "124", "title": "No!", "bits_votes": 10, "channel_points_votes": 4, "votes": 14},
			{"id": "125", "title": "Maybe!", "bits_votes": 0, "channel_points_votes": 7, "votes": 7}
		],
		"bits_voting": {"is_enabled": true, "amount_per_vote": 10},
		"channel_points_voting": {"is_enabled": true, "amount_per_vote": 10},
		"started_at": "2020-07-15T17:16:03.17106713Z",
		"ends_at": "2020-07-15T17:16:08.17106713Z"
	}`,
	{Type: eventsub.EventTypeChannelPollEnd, Version: "beta"}: `{
		"id": "1243456",
		"broadcaster_user_id": "1337",
		"broadcaster_user_login": "cool_user",
		"broadcaster_user_name": "Cool_User",
		"title": "Aren’t shoes just really hard socks?",
		"choices": [
			{"id": "123", "title": "Blue", "bits_votes": 50, "channel_points_votes": 70, "votes": 120},
			{"id": "124", "title": "Yellow", "bits_votes": 100, "channel_points_votes": 40, "votes": 140}
		],
		"bits_voting": {"is_enabled": true, "amount_per_vote": 10},
		"channel_points_voting": {"is_enabled": true, "amount_per_vote": 10},
		"status": "completed",
		"started_at": "2020-07-15T17:16:03.17106713Z",
		"ended_at": "2020-07-15T17:16:11.17106713Z"
	}`,
	{Type: eventsub.EventTypeChannelPredictionBegin, Version: "beta"}: `{
		"id": "1243456",
		"broadcaster_user_id": "1337",
		"broadcaster_user_login": "cool_user",
		"broadcaster_user_name": "Cool_User",
		"title": "Aren’t shoes just really hard socks?",
		"outcomes": [
			{"id": "1243456", "title": "Yeah!", "color": "blue", "top_predictors": null},
			{"id": "9876543", "title": "No!", "color": "pink", "top_predictors": null}
		],
		"started_at": "2020-07-15T17:16:03.17106713Z",
		"locks_at": "2020-07-15T17:21:03.17106713Z"
	}`,
	{Type: eventsub.EventTypeChannelPredictionProgress, Version: "beta"}: `{
		"id": "1243456",
		"broadcaster_user_id": "1337",
		"broadcaster_user_login": "cool_user",
		"broadcaster_user_name": "Cool_User",
		"title": "Aren’t shoes just really hard socks?",
		"outcomes": [
			{
				"id": "1243456",
				"title": "Yeah!",
				"color": "blue",
				"users": 10,
				"channel_points": 15000,
				"top_predictors": [
					{"user_name": "Cool_User", "user_login": "cool_user", "user_id": "1234", "channel_points_won": null, "channel_points_used": 500}
				]
			},
			{"id": "9876543", "title": "No!", "color": "pink", "users": 0, "channel_points": 0, "top_predictors": []}
		],
		"started_at": "2020-07-15T17:16:03.17106713Z",
		"locks_at": "2020-07-15T17:21:03.17106713Z"
	}`,
	{Type: eventsub.EventTypeChannelPredictionLock, Version: "beta"}: `{
		"id": "1243456",
		"broadcaster_user_id": "1337",
		"broadcaster_user_login": "cool_user",
		"broadcaster_user_name": "Cool_User",
		"title": "Aren’t shoes just really hard socks?",
		"outcomes": [
			{"id": "1243456", "title": "Yeah!", "color": "blue", "users": 10, "channel_points": 15000, "top_predictors": []}
		],
		"started_at": "2020-07-15T17:16:03.17106713Z",
		"locked_at": "2020-07-15T17:21:03.17106713Z"
	}`,
	{Type: eventsub.EventTypeChannelPredictionEnd, Version: "beta"}: `{
		"id": "1243456",
		"broadcaster_user_id": "1337",
		"broadcaster_user_login": "cool_user",
		"broadcaster_user_name": "Cool_User",
		"title": "Aren’t shoes just really hard socks?",
		"winning_outcome_id": "12345",
		"outcomes": [
			{
				"id": "12345",
				"title": "Yeah!",
				"color": "blue",
				"users": 2,
				"channel_points": 15000,
				"top_predictors": [
					{"user_name": "Cool_User", "user_login": "cool_user", "user_id": "1234", "channel_points_won": 10000, "channel_points_used": 500},
					{"user_name": "Coolest_User", "user_login": "coolest_user", "user_id": "1236", "channel_points_won": 5000, "channel_points_used": 100}
				]
			},
			{
				"id": "22435",
				"title": "No!",
				"users": 2,
				"channel_points": 200,
				"color": "pink",
				"top_predictors": [
					{"user_name": "Cooler_User", "user_login": "cooler_user", "user_id": "12345", "channel_points_won": null, "channel_points_used": 100},
					{"user_name": "Elite_User", "user_login": "elite_user", "user_id": "1337", "channel_points_won": null, "channel_points_used": 100}
				]
			}
		],
		"status": "resolved",
		"started_at": "2020-07-15T17:16:03.17106713Z",
		"locked_at": "2020-07-15T17:16:11.17106713Z",
		"ended_at": "2020-07-15T17:16:11.17106713Z"
	}`,
	{Type: eventsub.EventTypeChannelPredictionEnd, Version: "1"}: `{
		"id": "1243456",
		"broadcaster_user_id": "1337",
		"broadcaster_user_login": "cool_user",
		"broadcaster_user_name": "Cool_User",
		"title": "Aren’t shoes just really hard socks?",
		"winning_outcome_id": null,
		"outcomes": [
			{"id": "12345", "title": "Yeah!", "color": "blue", "users": 2, "channel_points": 15000, "top_predictors": null}
		],
		"status": "canceled",
		"started_at": "2020-07-15T17:16:03.17106713Z",
		"ended_at": "2020-07-15T17:16:11.17106713Z"
	}`,
	{Type: eventsub.EventTypeUserAuthorizationRevoke, Version: "1"}: `{
		"client_id": "crq72vsaoijkc83xx42hz6i37",
		"user_id": "1337",
		"user_login": null,
		"user_name": null
	}`,
}
