package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Each view is a fixed pipeline. Stage order is part of the contract and is covered by tests.

func stage(op string, body any) bson.D {
	return bson.D{{Key: op, Value: body}}
}

// lookup is a left join on localField = foreignField, optionally refined by a sub-pipeline.
func lookup(from, localField, foreignField, as string, sub ...bson.D) bson.D {
	body := bson.M{
		"from":         from,
		"localField":   localField,
		"foreignField": foreignField,
		"as":           as,
	}
	if len(sub) > 0 {
		pipe := make(bson.A, 0, len(sub))
		for _, s := range sub {
			pipe = append(pipe, s)
		}
		body["pipeline"] = pipe
	}
	return stage("$lookup", body)
}

// collapse turns a to-one join array into its single element. An empty join leaves the field absent.
func collapse(field string) bson.D {
	return stage("$addFields", bson.M{field: bson.M{"$first": "$" + field}})
}

func include(fields ...string) bson.M {
	out := bson.M{}
	for _, f := range fields {
		out[f] = 1
	}
	return out
}

func publicOwnerProjection() bson.D {
	return stage("$project", include("username", "fullName", "avatar"))
}

// inReferenceOrder maps each id in refs to the joined document with that _id, keeping the order of
// refs and dropping references whose document no longer exists.
func inReferenceOrder(refs, docs string) bson.M {
	return bson.M{"$filter": bson.M{
		"input": bson.M{"$map": bson.M{
			"input": bson.M{"$ifNull": bson.A{refs, bson.A{}}},
			"as":    "ref",
			"in": bson.M{"$ifNull": bson.A{
				bson.M{"$first": bson.M{"$filter": bson.M{
					"input": docs,
					"as":    "doc",
					"cond":  bson.M{"$eq": bson.A{"$$doc._id", "$$ref"}},
				}}},
				nil,
			}},
		}},
		"as":   "item",
		"cond": bson.M{"$ne": bson.A{"$$item", nil}},
	}}
}

// ChannelProfilePipeline matches a user by username and derives subscription counts and whether
// viewer subscribes to it. Only public fields survive the final projection.
func ChannelProfilePipeline(username string, viewer primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		stage("$match", bson.M{"username": username}),
		lookup(colSubscriptions, "_id", "channel", "subscribers"),
		lookup(colSubscriptions, "_id", "subscriber", "subscribedTo"),
		stage("$addFields", bson.M{
			"subscribersCount":          bson.M{"$size": "$subscribers"},
			"channelsSubscribedToCount": bson.M{"$size": "$subscribedTo"},
			"isSubscribed":              bson.M{"$in": bson.A{viewer, "$subscribers.subscriber"}},
		}),
		stage("$project", include(
			"username", "fullName", "bio", "avatar", "coverImage",
			"subscribersCount", "channelsSubscribedToCount", "isSubscribed", "createdAt",
		)),
	}
}

// WatchHistoryPipeline yields at most one document {history: [...]} for the user.
func WatchHistoryPipeline(user primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		stage("$match", bson.M{"_id": user}),
		lookup(colVideos, "watchHistory", "_id", "historyVideos",
			lookup(colUsers, "owner", "_id", "owner", publicOwnerProjection()),
			collapse("owner"),
		),
		stage("$project", bson.M{
			"_id":     0,
			"history": inReferenceOrder("$watchHistory", "$historyVideos"),
		}),
	}
}

func VideoDetailPipeline(video primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		stage("$match", bson.M{"_id": video}),
		lookup(colUsers, "owner", "_id", "owner",
			lookup(colSubscriptions, "_id", "channel", "subscribers"),
			lookup(colSubscriptions, "_id", "subscriber", "subscribedTo"),
			stage("$addFields", bson.M{
				"subscribersCount": bson.M{"$size": "$subscribers"},
				"subscribedCount":  bson.M{"$size": "$subscribedTo"},
			}),
			stage("$project", include("username", "fullName", "avatar", "bio", "subscribersCount", "subscribedCount")),
		),
		collapse("owner"),
	}
}

func PlaylistDetailPipeline(playlist primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		stage("$match", bson.M{"_id": playlist}),
		lookup(colUsers, "owner", "_id", "owner", publicOwnerProjection()),
		lookup(colVideos, "videos", "_id", "videoDocs",
			stage("$project", include("title", "thumbnail", "description", "duration", "views", "createdAt")),
		),
		stage("$addFields", bson.M{
			"owner":  bson.M{"$first": "$owner"},
			"videos": inReferenceOrder("$videos", "$videoDocs"),
		}),
		stage("$project", bson.M{"videoDocs": 0}),
	}
}

// VideoCommentsPipeline pages through a video's comments, newest first. page is 1-based.
func VideoCommentsPipeline(video primitive.ObjectID, page, limit int) mongo.Pipeline {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return mongo.Pipeline{
		stage("$match", bson.M{"video": video}),
		lookup(colUsers, "owner", "_id", "owner", stage("$project", include("username", "avatar"))),
		collapse("owner"),
		stage("$sort", bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}),
		stage("$skip", int64((page-1)*limit)),
		stage("$limit", int64(limit)),
	}
}

// LikedVideosPipeline lists the videos a user liked, most recent like first. Likes on deleted
// videos are dropped.
func LikedVideosPipeline(user primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		stage("$match", bson.M{"likedBy": user, "video": bson.M{"$exists": true}}),
		lookup(colVideos, "video", "_id", "video",
			lookup(colUsers, "owner", "_id", "owner", publicOwnerProjection()),
			collapse("owner"),
		),
		collapse("video"),
		stage("$match", bson.M{"video": bson.M{"$ne": nil}}),
		stage("$sort", bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}),
		stage("$project", bson.M{"likedAt": "$createdAt", "video": 1}),
	}
}

func SubscribedChannelsPipeline(subscriber primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		stage("$match", bson.M{"subscriber": subscriber}),
		lookup(colUsers, "channel", "_id", "channel", publicOwnerProjection()),
		collapse("channel"),
		stage("$match", bson.M{"channel": bson.M{"$ne": nil}}),
		stage("$sort", bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}),
		stage("$project", bson.M{"subscribedAt": "$createdAt", "channel": 1}),
	}
}
